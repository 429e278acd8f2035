package handlers

import (
	"github.com/aohmcareer/ArtReferenceAPI/internal/index"
	"github.com/aohmcareer/ArtReferenceAPI/internal/media"
	"github.com/aohmcareer/ArtReferenceAPI/internal/query"
	"github.com/aohmcareer/ArtReferenceAPI/internal/startup"
)

type Handlers struct {
	engine        *query.Engine
	store         *index.Store
	thumbGen      *media.ThumbnailGenerator
	rootPath      string
	baseServePath string
}

func New(engine *query.Engine, store *index.Store, config *startup.Config) *Handlers {
	return &Handlers{
		engine:        engine,
		store:         store,
		thumbGen:      media.NewThumbnailGenerator(config.ThumbnailDir, config.ThumbnailsEnabled),
		rootPath:      config.RootPath,
		baseServePath: config.BaseServePath,
	}
}
