// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"github.com/specialistvlad/optschema/internal/registry"
	"github.com/specialistvlad/optschema/modules/env_vars"
	"github.com/specialistvlad/optschema/modules/http_client"
	"github.com/specialistvlad/optschema/modules/http_request"
	"github.com/specialistvlad/optschema/modules/print"
	"github.com/specialistvlad/optschema/modules/socketio_client"
)

// coreModules is the list of all modules compiled into the binary.
var coreModules = []registry.Module{
	&print.Module{},
	&env_vars.Module{},
	&http_client.Module{},
	&http_request.Module{},
	&socketio_client.Module{},
}
