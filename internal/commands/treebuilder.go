package commands

import (
	"go.uber.org/zap"

	"github.com/temirov/dirscan/internal/utils"
)

// TreeBuilder builds directory tree nodes using configured options.
type TreeBuilder struct {
	Matcher  *utils.Matcher
	MaxDepth int
	Logger   *zap.Logger
}

// NewTreeBuilder returns a builder that excludes entries matched by matcher and descends
// at most maxDepth directory levels. A non-positive maxDepth disables the limit.
func NewTreeBuilder(matcher *utils.Matcher, maxDepth int, logger *zap.Logger) *TreeBuilder {
	return &TreeBuilder{
		Matcher:  matcher,
		MaxDepth: maxDepth,
		Logger:   utils.LoggerOrNop(logger),
	}
}

func (treeBuilder *TreeBuilder) logger() *zap.Logger {
	return utils.LoggerOrNop(treeBuilder.Logger)
}
