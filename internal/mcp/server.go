// Package mcp exposes the listing catalog and the location knowledge base as
// Model Context Protocol tools, so assistants other than the built-in one can
// browse homes.
package mcp

import (
	"Bodi/internal/core/services"
	"Bodi/internal/geo"
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

type Server struct {
	log        zerolog.Logger
	properties *services.PropertyService
	places     *geo.KnowledgeBase
	mcp        *sdk.Server
}

func NewServer(properties *services.PropertyService, places *geo.KnowledgeBase, version string, baseLogger *zerolog.Logger) *Server {
	s := &Server{
		log:        baseLogger.With().Str("component", "mcp_server").Logger(),
		properties: properties,
		places:     places,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "bodi",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

// Run serves until the transport closes or ctx is cancelled.
func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	s.log.Info().Msg("MCP server running")
	return s.mcp.Run(ctx, transport)
}
