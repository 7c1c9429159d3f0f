// handlers/handlers.go - shared handler dependencies
package handlers

import (
	"fitlog/services"
)

var (
	engine  *services.Engine
	hub     *services.Hub
	textGen *services.TextGenerator
	uploads services.Storage
)

// Init wires the service layer into the handler package. Called once from
// main before routes are registered.
func Init(e *services.Engine, h *services.Hub, tg *services.TextGenerator, st services.Storage) {
	engine = e
	hub = h
	textGen = tg
	uploads = st
}
