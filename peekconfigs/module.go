package peekconfigs

import (
	"github.com/reusee/choicepeek/configs"
	"github.com/reusee/choicepeek/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}
