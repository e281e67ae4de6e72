// Command vexeldemo builds one frame against the recording driver and
// prints batching and draw-call statistics. It renders nothing on
// screen; it exists to show how a scene turns into GPU work.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/vexelgl/vexel"
	"github.com/vexelgl/vexel/batch"
	"github.com/vexelgl/vexel/draw"
	"github.com/vexelgl/vexel/internal/gldriver"
	"github.com/vexelgl/vexel/render"
	"github.com/vexelgl/vexel/texture"
)

type quadSpec struct {
	X       float32 `yaml:"x"`
	Y       float32 `yaml:"y"`
	W       float32 `yaml:"w"`
	H       float32 `yaml:"h"`
	Color   string  `yaml:"color"`
	Texture string  `yaml:"texture"`
}

// sceneOp is one step of the scene script: either a quad or a mask
// operation ("push", "pop", "commit").
type sceneOp struct {
	Quad *quadSpec `yaml:"quad,omitempty"`
	Mask string    `yaml:"mask,omitempty"`
}

type scene struct {
	Width  int       `yaml:"width"`
	Height int       `yaml:"height"`
	Ops    []sceneOp `yaml:"ops"`
}

// defaultScene draws two coalescing quads, a masked quad, and one plain
// quad after the mask is popped.
var defaultScene = scene{
	Width:  800,
	Height: 600,
	Ops: []sceneOp{
		{Quad: &quadSpec{X: 10, Y: 10, W: 100, H: 100, Color: "ff0000ff"}},
		{Quad: &quadSpec{X: 120, Y: 10, W: 100, H: 100, Color: "ff0000ff"}},
		{Mask: "push"},
		{Quad: &quadSpec{X: 50, Y: 200, W: 200, H: 200, Color: "ffffffff"}},
		{Mask: "commit"},
		{Quad: &quadSpec{X: 0, Y: 150, W: 300, H: 300, Color: "00ff00ff", Texture: "checker"}},
		{Mask: "pop"},
		{Quad: &quadSpec{X: 50, Y: 200, W: 200, H: 200, Color: "ffffffff"}},
		{Mask: "commit"},
		{Quad: &quadSpec{X: 400, Y: 400, W: 50, H: 50, Color: "0000ffff"}},
	},
}

func main() {
	scenePath := pflag.String("scene", "", "YAML scene script (default: built-in scene)")
	verbose := pflag.BoolP("verbose", "v", false, "log per-frame diagnostics to stderr")
	listCalls := pflag.Bool("calls", false, "dump the full recorded GPU call stream")
	pflag.Parse()

	if *verbose {
		vexel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	sc := defaultScene
	if *scenePath != "" {
		data, err := os.ReadFile(*scenePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "vexeldemo:", err)
			os.Exit(1)
		}
		if err := yaml.Unmarshal(data, &sc); err != nil {
			fmt.Fprintf(os.Stderr, "vexeldemo: parsing %s: %v\n", *scenePath, err)
			os.Exit(1)
		}
	}
	if sc.Width <= 0 {
		sc.Width = 800
	}
	if sc.Height <= 0 {
		sc.Height = 600
	}

	rec := gldriver.NewRecorder()
	ctx, err := render.NewContext(rec, render.ContextConfig{
		Width:  sc.Width,
		Height: sc.Height,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "vexeldemo:", err)
		os.Exit(1)
	}
	defer ctx.Close()

	frame, err := buildFrame(ctx, sc)
	if err != nil {
		fmt.Fprintln(os.Stderr, "vexeldemo:", err)
		os.Exit(1)
	}

	rec.Reset()
	ctx.Render(frame)

	fmt.Printf("scene: %d ops, %dx%d\n", len(sc.Ops), sc.Width, sc.Height)
	fmt.Printf("batches recorded:  %d\n", frame.Len())
	fmt.Printf("overlapping pairs: %d\n", overlapPairs(frame))
	fmt.Printf("draw calls:        %d\n", rec.Count("DrawTriangles"))
	fmt.Printf("buffer uploads:    %d\n", rec.Count("BufferData"))
	fmt.Printf("texture binds:     %d\n", rec.Count("BindTexture"))
	fmt.Printf("uniform uploads:   %d\n",
		rec.Count("Uniform1i")+rec.Count("Uniform1f")+rec.Count("Uniform2f")+
			rec.Count("Uniform4f")+rec.Count("UniformMatrix4"))
	fmt.Printf("blend changes:     %d\n",
		rec.Count("BlendEquation")+rec.Count("BlendFunc")+rec.Count("BlendColor"))
	fmt.Printf("mask strip clears: %d\n", rec.Count("Clear"))
	fmt.Printf("total GPU calls:   %d\n", rec.Len())

	if *listCalls {
		for i, c := range rec.Calls {
			fmt.Printf("%4d  %s %v\n", i, c.Op, c.Args)
		}
	}
}

// overlapPairs counts batch pairs whose bounds overlap on screen. High
// counts mean heavy blending overdraw that no coalescing can remove.
func overlapPairs(f *draw.Frame) int {
	batches := f.Pool().Batches()
	n := 0
	for i, a := range batches {
		for _, b := range batches[i+1:] {
			if a.Bounds().Overlaps(b.Bounds()) {
				n++
			}
		}
	}
	return n
}

// buildFrame replays the scene script into a frame.
func buildFrame(ctx *render.Context, sc scene) (*draw.Frame, error) {
	w, h := float32(sc.Width), float32(sc.Height)
	f := draw.NewFrame(mgl32.Ortho2D(0, w, h, 0))
	p := draw.NewParams()

	for i, op := range sc.Ops {
		switch {
		case op.Quad != nil:
			if err := pushQuad(ctx, f, &p, op.Quad); err != nil {
				return nil, fmt.Errorf("op %d: %w", i, err)
			}
		case op.Mask != "":
			switch op.Mask {
			case "push":
				p.PushMask()
			case "pop":
				p.PopMask()
			case "commit":
				p.CommitMask()
			default:
				return nil, fmt.Errorf("op %d: unknown mask op %q", i, op.Mask)
			}
		default:
			return nil, fmt.Errorf("op %d: empty", i)
		}
	}
	return f, nil
}

func pushQuad(ctx *render.Context, f *draw.Frame, p *draw.Params, q *quadSpec) error {
	color := vexel.White
	if q.Color != "" {
		v, err := strconv.ParseUint(q.Color, 16, 32)
		if err != nil {
			return fmt.Errorf("color %q: %w", q.Color, err)
		}
		color = vexel.Color(v)
	}

	p.UseTexture(vexel.NoTexture)
	var u, v uint16
	if q.Texture == "checker" {
		key := ctx.Textures().Register(checker())
		p.UseTexture(key)
		u, v = 16, 16
	}

	b := f.FindBatch(p, 4, vexel.NewRect(q.X, q.Y, q.W, q.H))
	base := b.PushUint16(
		batch.Vertex[uint16]{X: q.X, Y: q.Y, Color: color},
		batch.Vertex[uint16]{X: q.X + q.W, Y: q.Y, U: u, Color: color},
		batch.Vertex[uint16]{X: q.X + q.W, Y: q.Y + q.H, U: u, V: v, Color: color},
		batch.Vertex[uint16]{X: q.X, Y: q.Y + q.H, V: v, Color: color},
	)
	b.Triangles(base, 0, 1, 2, 0, 2, 3)
	return nil
}

func checker() texture.Generated {
	return texture.Generated{
		Name: "checker-16", Width: 16, Height: 16,
		At: func(x, y int) vexel.Color {
			if (x/4+y/4)%2 == 0 {
				return vexel.White
			}
			return vexel.RGBA8(64, 64, 64, 255)
		},
	}
}
