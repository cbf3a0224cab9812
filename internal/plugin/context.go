package plugin

import (
	"log/slog"

	"github.com/wilbur182/portfolio/internal/config"
	"github.com/wilbur182/portfolio/internal/features"
	"github.com/wilbur182/portfolio/internal/markdown"
	"github.com/wilbur182/portfolio/internal/storage"
)

// Context provides shared resources to plugins during initialization.
type Context struct {
	Config   *config.Config
	Flags    *features.Context
	Storage  storage.Storage // durable site storage; nil when unavailable
	Markdown *markdown.Renderer
	Logger   *slog.Logger
}
