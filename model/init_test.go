package model_test

import (
	"github.com/shodgson/richtext-go/test/builder"
)

var (
	doc  = builder.Doc
	p    = builder.P
	h1   = builder.H1
	list = builder.List
	item = builder.Item
	b    = builder.B
	i    = builder.I
	m    = builder.M
	img  = builder.Img
	math = builder.Math
)

var builderRef = builder.Ref
