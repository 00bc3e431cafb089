package bot

import (
	"context"

	coretelegram "github.com/pamnard/TaroBot/core/telegram"
	"github.com/pamnard/TaroBot/core/telegram/commands"
	"github.com/pamnard/TaroBot/core/telegram/router"
)

func (a *App) registerHandlers(reg *coretelegram.Registry) error {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.cmdStart,
		Description: "Introduction",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     a.cmdHelp,
		Description: "How the readings work",
	})
	reg.RegisterCommand("/new", commands.Command{
		Handler:     a.cmdNew,
		Description: "Start a fresh reading",
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     a.cmdStats,
		Description: "Runtime stats",
		AdminOnly:   true,
		Hidden:      true,
	})

	if err := reg.RegisterCallback(cbAsk, a.handleAsk); err != nil {
		return err
	}
	if err := reg.RegisterCallback(cbNext, a.handleNext); err != nil {
		return err
	}
	return nil
}

func (a *App) buildRoutes(reg *coretelegram.Registry) []coretelegram.Route {
	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(reg, router.TextOptions{
		Intake:         a.handleQuestion,
		UnknownCommand: a.handleUnknownCommand,
		RefuseMedia:    a.handleMedia,
	})...)
	return routes
}

func (a *App) onStart(_ context.Context, rt coretelegram.Runtime) error {
	a.dispatcher = rt.Dispatcher
	return nil
}

func (a *App) onStop(_ context.Context, _ coretelegram.Runtime) error {
	a.store.Close()
	return nil
}
