package rtrie

import (
	"strconv"

	"github.com/rohanthewiz/element"
	"github.com/rohanthewiz/rtrie/consts"
)

// RoutesPage is a handler rendering the server's route table as HTML.
func (s *Server) RoutesPage(ctx Context) error {
	routes := s.Routes()
	b := element.NewBuilder()

	b.Html().R(
		b.Head().R(
			b.Title().T("Routes"),
			b.Style().T(`
				body { font-family: sans-serif; margin: 2em; }
				td, th { padding: 4px 12px; text-align: left; }
				.use { color: #888; }
			`),
		),
		b.Body().R(
			b.H1().T("Routes"),
			b.Table().R(
				b.Tr().R(
					b.Th().T("Method"),
					b.Th().T("Path"),
					b.Th().T("Handlers"),
				),
				func() any {
					for _, route := range routes {
						class := "route"
						if route.Method == consts.MethodUse {
							class = "use"
						}

						b.Tr("class", class).R(
							b.Td().T(route.Method),
							b.Td().T(route.Path),
							b.Td().T(strconv.Itoa(route.Handlers)),
						)
					}
					return nil
				}(),
			),
		),
	)

	ctx.Response().SetHeader(consts.HeaderContentType, consts.MIMEHTML)
	return ctx.WriteString(b.String())
}
