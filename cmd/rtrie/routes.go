package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/rohanthewiz/rtrie/config"
	"github.com/rohanthewiz/rtrie/consts"
	"github.com/rohanthewiz/rtrie/core/rtr"
	"github.com/rohanthewiz/rtrie/logger"
	"github.com/spf13/cobra"
)

func routesCmd(envFiles *[]string) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the demo application's route table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*envFiles...)
			if err != nil {
				return err
			}

			printRoutes(os.Stdout, newApp(cfg, logger.Noop{}).server.Routes())
			return nil
		},
	}
}

var methodColors = map[string]*color.Color{
	consts.MethodUse:    color.New(color.FgHiBlack),
	consts.MethodGet:    color.New(color.FgGreen),
	consts.MethodPost:   color.New(color.FgYellow),
	consts.MethodPut:    color.New(color.FgBlue),
	consts.MethodDelete: color.New(color.FgRed),
}

func printRoutes(w io.Writer, routes []rtr.RouteList) {
	for _, route := range routes {
		method := fmt.Sprintf("%-6s", route.Method)
		if c, ok := methodColors[route.Method]; ok {
			method = c.Sprint(method)
		}

		fmt.Fprintf(w, "%s %-24s %d\n", method, route.Path, route.Handlers)
	}
}
