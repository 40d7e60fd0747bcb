package cli

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"molten-core/internal/app"
	"molten-core/internal/core"
	"molten-core/internal/render"
)

type renderOptions struct {
	frames int
	every  int
	start  int
	out    string
	format string
}

func newRenderCmd(cfg *app.Config) *cobra.Command {
	opts := renderOptions{frames: 1, every: 1, out: "molten.png", format: "png"}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render frames to PNG files or an animated GIF",
		Long: `Render frames headlessly.

With --format png and more than one frame, --out is a pattern: a
printf verb such as frame-%03d.png is used as is, otherwise the frame
number is inserted before the extension. With --format gif all frames go
into one animation timed by --tps.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := opts.validate(); err != nil {
				return err
			}
			scene, _, err := buildScene(ctx, cfg)
			if err != nil {
				return err
			}
			p := newProgress(loggerFromContext(ctx))
			paths, err := renderFrames(ctx, scene, cfg, opts)
			if err != nil {
				return err
			}
			p.done(fmt.Sprintf("Rendered %d frame(s)", opts.frames))
			w := cmd.OutOrStdout()
			printSuccess(w, "%s %dx%d", scene.Name(), cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
			for _, path := range paths {
				printFile(w, path)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.frames, "frames", opts.frames, "number of frames to write")
	cmd.Flags().IntVar(&opts.every, "every", opts.every, "simulation steps between written frames")
	cmd.Flags().IntVar(&opts.start, "start", opts.start, "steps to run before the first frame")
	cmd.Flags().StringVarP(&opts.out, "out", "o", opts.out, "output file or pattern")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format: png or gif")
	return cmd
}

func (o renderOptions) validate() error {
	if o.frames < 1 || o.every < 1 || o.start < 0 {
		return fmt.Errorf("%w: frames and every must be positive", app.ErrBadConfig)
	}
	switch o.format {
	case "png", "gif":
		return nil
	}
	return fmt.Errorf("%w: format %q", app.ErrBadConfig, o.format)
}

func renderFrames(ctx context.Context, scene core.Scene, cfg *app.Config, opts renderOptions) ([]string, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	size := scene.Size()
	raster, err := render.NewRaster(size.W, size.H)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(opts.out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	for range opts.start {
		scene.Step()
	}

	var (
		paths []string
		anim  gif.GIF
	)
	delay := max(100*opts.every/max(cfg.TPS, 1), 2)
	for i := 0; i < opts.frames; i++ {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		if i > 0 {
			for range opts.every {
				scene.Step()
			}
		}
		scene.Draw(raster)
		img := scaled(raster.Image(), cfg.Scale)

		switch opts.format {
		case "png":
			path := framePath(opts.out, i, opts.frames)
			if err := imaging.Save(img, path); err != nil {
				return paths, fmt.Errorf("save %s: %w", path, err)
			}
			paths = append(paths, path)
		case "gif":
			anim.Image = append(anim.Image, paletted(img))
			anim.Delay = append(anim.Delay, delay)
		}
	}

	if opts.format == "gif" {
		if err := writeGIF(opts.out, &anim); err != nil {
			return nil, err
		}
		paths = append(paths, opts.out)
	}
	return paths, nil
}

func scaled(img *image.RGBA, scale int) image.Image {
	if scale <= 1 {
		return img
	}
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*scale, b.Dy()*scale, imaging.Lanczos)
}

func paletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	pm := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(pm, b, img, b.Min)
	return pm
}

func writeGIF(path string, anim *gif.GIF) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		f.Close()
		return fmt.Errorf("encode gif: %w", err)
	}
	return f.Close()
}

// framePath names frame i of total. A single frame uses out unchanged.
func framePath(out string, i, total int) string {
	if total == 1 {
		return out
	}
	if strings.Contains(out, "%") {
		return fmt.Sprintf(out, i)
	}
	ext := filepath.Ext(out)
	return fmt.Sprintf("%s-%04d%s", strings.TrimSuffix(out, ext), i, ext)
}
