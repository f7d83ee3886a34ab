package app

import (
	"github.com/specialistvlad/mkr/internal/handlers"
	"github.com/specialistvlad/mkr/modules/archive"
	"github.com/specialistvlad/mkr/modules/command"
	"github.com/specialistvlad/mkr/modules/env_vars"
	"github.com/specialistvlad/mkr/modules/fileops"
	"github.com/specialistvlad/mkr/modules/print"
)

// coreModules is the definitive list of all action modules compiled into
// the mkr binary.
var coreModules = []handlers.Module{
	&print.Module{},
	&env_vars.Module{},
	&command.Module{},
	&fileops.Module{},
	&archive.Module{},
}
