package app

import (
	"github.com/specialistvlad/railpath/internal/registry"
	"github.com/specialistvlad/railpath/modules/blocker"
	"github.com/specialistvlad/railpath/modules/destination"
	"github.com/specialistvlad/railpath/modules/speedlimit"
	"github.com/specialistvlad/railpath/modules/switcher"
)

// coreModules is the definitive list of all sign modules that are compiled
// into the railpath binary.
var coreModules = []registry.Module{
	&destination.Module{},
	&switcher.Module{},
	&blocker.Module{},
	&speedlimit.Module{},
}
