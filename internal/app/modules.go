package app

import (
	"github.com/vk/fnguard/internal/env"
	"github.com/vk/fnguard/modules/mathx"
	"github.com/vk/fnguard/modules/strutil"
)

// coreModules is the definitive list of all function modules that are
// compiled into the fnguard binary.
var coreModules = []env.Module{
	&mathx.Module{},
	&strutil.Module{},
}
