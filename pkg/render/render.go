package render

import (
	"bytes"
	"context"

	"github.com/goccy/go-graphviz"

	"github.com/mlmac-seid/london-train-network/pkg/errors"
)

// RenderSVG renders a DOT graph to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string, engine string) ([]byte, error) {
	return renderFormat(ctx, dot, engine, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using the embedded Graphviz.
func RenderPNG(ctx context.Context, dot string, engine string) ([]byte, error) {
	return renderFormat(ctx, dot, engine, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, engine string, format graphviz.Format) ([]byte, error) {
	layout, err := engineLayout(engine)
	if err != nil {
		return nil, err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	gv.SetLayout(layout)

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render graph")
	}
	return buf.Bytes(), nil
}
