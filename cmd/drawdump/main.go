// Command drawdump assembles a YAML scene and prints the resulting draw
// records.
//
// Usage:
//
//	drawdump -scene scene.yaml [-config drawpack.yaml] [-v]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/drawpack"
	"github.com/gogpu/drawpack/draw"
	"github.com/gogpu/drawpack/pool"
	"github.com/gogpu/drawpack/upload"
	"github.com/gogpu/drawpack/vertex"
)

func main() {
	var (
		scenePath  = flag.String("scene", "", "scene file (YAML)")
		configPath = flag.String("config", "", "drawpack config file (YAML)")
		verbose    = flag.Bool("v", false, "debug logging to stderr")
	)
	flag.Parse()

	if *scenePath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		drawpack.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	var opts []drawpack.Option
	if *configPath != "" {
		cfg, err := drawpack.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		opts = cfg.Options()
	}

	scene, err := loadScene(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	if err := run(os.Stdout, scene, opts...); err != nil {
		log.Fatalf("Failed to assemble scene: %v", err)
	}
}

// shaders holds the ids a real backend would register at startup.
type shaders struct {
	stroke, dashed, fill, glyph draw.Shader
	solid                       draw.Shader
}

func registerShaders() shaders {
	r := draw.NewShaderRegistry()
	return shaders{
		stroke: r.Register(draw.ShaderItem, 1, 0),
		dashed: r.Register(draw.ShaderItem, 1, 0),
		fill:   r.Register(draw.ShaderItem, 1, 1),
		glyph:  r.Register(draw.ShaderItem, vertex.NumGlyphRenderTypes, 2),
		solid:  r.Register(draw.ShaderBrush, 1, 0),
	}
}

func run(w io.Writer, scene *Scene, opts ...drawpack.Option) error {
	ctx := drawpack.NewContext(opts...)
	sh := registerShaders()

	base := draw.State{
		BrushShader: sh.solid,
		Blend:       draw.BlendSourceOver,
		ItemMatrix:  ctx.Acquire(pool.IdentityItemMatrix()),
		Clip:        ctx.Acquire(pool.NoClip()),
		BrushAdjust: ctx.Acquire(pool.IdentityBrushAdjust()),
	}
	frame := upload.NewFrame()

	for _, it := range scene.Strokes {
		id, contours, style, err := it.contour()
		if err != nil {
			return err
		}
		st := base
		st.ItemShader = sh.stroke
		if style.Dashed {
			st.ItemShader = sh.dashed
		}
		recs := ctx.Stroke(id, contours, style, st)
		printRecords(w, fmt.Sprintf("stroke %d", it.ID), recs)
		frame.Add(recs)
	}
	for i, it := range scene.Fills {
		in, rule, err := it.fillInput()
		if err != nil {
			return err
		}
		st := base
		st.ItemShader = sh.fill
		recs := ctx.Fill(in, rule, st)
		printRecords(w, fmt.Sprintf("fill %d (%v)", i, rule), recs)
		frame.Add(recs)
	}
	if len(scene.Glyphs) > 0 {
		glyphs := make([]vertex.Glyph, 0, len(scene.Glyphs))
		for _, it := range scene.Glyphs {
			g, err := it.glyph()
			if err != nil {
				return err
			}
			glyphs = append(glyphs, g)
		}
		st := base
		st.ItemShader = sh.glyph
		recs := ctx.Glyphs(glyphs, st)
		printRecords(w, "glyphs", recs)
		frame.Add(recs)
	}

	frame.SetData(ctx.Store())
	fmt.Fprintf(w, "frame: %d vertices, %d indices, %d data blocks, %d calls in %d batches\n",
		len(frame.Vertices), len(frame.Indices), len(frame.Data)/pool.BlockWords,
		len(frame.Calls), frame.Batches())

	fs := ctx.EndFrame()
	fmt.Fprintf(w, "pool: %d slabs, generation %d\n", fs.Pool.Slabs, fs.Pool.Generation)
	return nil
}

func printRecords(w io.Writer, name string, recs []draw.Record) {
	fmt.Fprintf(w, "%s: %d records\n", name, len(recs))
	for _, r := range recs {
		c := r.Chunk
		fmt.Fprintf(w, "  chunk %d: vertices %d+%d indices %d+%d adjust %d depth [%d, %d] z %d header @%d key %016x\n",
			c.ID, c.VertexFirst, c.VertexCount, c.IndexFirst, c.IndexCount, c.IndexAdjust,
			c.Depth.Min, c.Depth.Max, r.Header.Z, r.HeaderLocation, r.Key.Hash())
	}
}
