package main

import (
	"github.com/reusee/choicepeek/debugs"
	"github.com/reusee/choicepeek/explores"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Explores explores.Module
	Debugs   debugs.Module
}
