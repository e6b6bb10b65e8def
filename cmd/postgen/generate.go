package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/meikuraledutech/postgen"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// avatarFlags select the avatar for a generation command.
// Precedence: --avatar (stored), --avatar-file, then --name/--niche/--style.
type avatarFlags struct {
	id    string
	file  string
	name  string
	niche string
	style string
}

func (f *avatarFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.id, "avatar", "", "Stored avatar ID")
	cmd.Flags().StringVar(&f.file, "avatar-file", "", "YAML file with nome, nicho and prompt_base")
	cmd.Flags().StringVar(&f.name, "name", "", "Avatar name")
	cmd.Flags().StringVar(&f.niche, "niche", "", "Avatar niche")
	cmd.Flags().StringVar(&f.style, "style", "", "Avatar base style")
}

func (f *avatarFlags) resolve(ctx context.Context, a *app) (postgen.Avatar, error) {
	var avatar postgen.Avatar

	switch {
	case f.id != "":
		store, err := a.openStore(ctx)
		if err != nil {
			return avatar, err
		}
		stored, err := store.GetAvatar(ctx, f.id)
		if err != nil {
			return avatar, err
		}
		avatar = *stored
	case f.file != "":
		loaded, err := loadAvatarFile(f.file)
		if err != nil {
			return avatar, err
		}
		avatar = loaded
	}

	// Explicit flags override whatever was loaded.
	if f.name != "" {
		avatar.Name = f.name
	}
	if f.niche != "" {
		avatar.Niche = f.niche
	}
	if f.style != "" {
		avatar.BaseStyle = f.style
	}

	if avatar.Niche == "" {
		return avatar, errors.New("avatar niche is required (use --avatar, --avatar-file or --niche)")
	}
	return avatar, nil
}

func loadAvatarFile(path string) (postgen.Avatar, error) {
	var avatar postgen.Avatar
	data, err := os.ReadFile(path)
	if err != nil {
		return avatar, fmt.Errorf("read avatar file: %w", err)
	}
	if err := yaml.Unmarshal(data, &avatar); err != nil {
		return avatar, fmt.Errorf("parse avatar file %s: %w", path, err)
	}
	return avatar, nil
}

// reportFailure logs the classification of a failed generation call and passes err through.
func (a *app) reportFailure(op string, err error) error {
	var perr *postgen.Error
	if errors.As(err, &perr) {
		a.logger.Debug("generation failed",
			zap.String("op", op),
			zap.String("kind", perr.Kind.String()),
			zap.Int("status", perr.Status),
		)
	}
	return err
}

func newCaptionCmd(a *app) *cobra.Command {
	var af avatarFlags
	cmd := &cobra.Command{
		Use:   "caption <topic>",
		Short: "Generate a post caption",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			avatar, err := af.resolve(ctx, a)
			if err != nil {
				return err
			}

			engine, _ := a.engine(ctx)
			caption, err := engine.Caption(ctx, avatar, args[0])
			if err != nil {
				return a.reportFailure("caption", err)
			}

			return render(a.out, a.output, map[string]string{"caption": caption}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, caption)
				return err
			})
		},
	}
	af.register(cmd)
	return cmd
}

func newHashtagsCmd(a *app) *cobra.Command {
	var af avatarFlags
	var count int
	cmd := &cobra.Command{
		Use:   "hashtags <topic>",
		Short: "Generate hashtags for a niche and topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			avatar, err := af.resolve(ctx, a)
			if err != nil {
				return err
			}

			engine, _ := a.engine(ctx)
			raw, err := engine.Hashtags(ctx, avatar.Niche, args[0], count)
			if err != nil {
				return a.reportFailure("hashtags", err)
			}

			tags := postgen.ParseHashtags(raw)
			return render(a.out, a.output, map[string][]string{"hashtags": tags}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, strings.Join(tags, " "))
				return err
			})
		},
	}
	af.register(cmd)
	cmd.Flags().IntVar(&count, "count", postgen.DefaultHashtagCount, "Number of hashtags")
	return cmd
}

func newImagePromptCmd(a *app) *cobra.Command {
	var af avatarFlags
	cmd := &cobra.Command{
		Use:   "image-prompt <topic>",
		Short: "Generate an English image-generation prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			avatar, err := af.resolve(ctx, a)
			if err != nil {
				return err
			}

			engine, _ := a.engine(ctx)
			prompt, err := engine.ImagePrompt(ctx, avatar, args[0])
			if err != nil {
				return a.reportFailure("image-prompt", err)
			}

			return render(a.out, a.output, map[string]string{"image_prompt": prompt}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, prompt)
				return err
			})
		},
	}
	af.register(cmd)
	return cmd
}

func newImageCmd(a *app) *cobra.Command {
	var aspectRatio, outPath string
	cmd := &cobra.Command{
		Use:   "image <prompt>",
		Short: "Generate an image from a prompt",
		Long:  "Generate an image from a prompt. Without --out the image is printed as a data URI.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			img, err := a.client(ctx).GenerateImage(ctx, args[0], &postgen.ImageOptions{AspectRatio: aspectRatio})
			if err != nil {
				return a.reportFailure("image", err)
			}
			return a.emitImage(img, outPath)
		},
	}
	cmd.Flags().StringVar(&aspectRatio, "aspect-ratio", postgen.DefaultAspectRatio, "Image aspect ratio")
	cmd.Flags().StringVar(&outPath, "out", "", "Write the decoded image to this file")
	return cmd
}

func (a *app) emitImage(img *postgen.Image, outPath string) error {
	if outPath != "" {
		if err := writeImage(img, outPath); err != nil {
			return err
		}
		a.logger.Info("image written", zap.String("path", outPath), zap.String("mime_type", img.MIMEType))
	}

	return render(a.out, a.output, img, func(w io.Writer) error {
		if outPath != "" {
			_, err := fmt.Fprintln(w, outPath)
			return err
		}
		_, err := fmt.Fprintln(w, img.DataURI())
		return err
	})
}

func writeImage(img *postgen.Image, path string) error {
	data, err := img.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}

func newPostCmd(a *app) *cobra.Command {
	var af avatarFlags
	var opts postgen.ComposeOptions
	var outPath string
	cmd := &cobra.Command{
		Use:   "post <topic>",
		Short: "Generate caption, hashtags, image prompt and optionally an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			avatar, err := af.resolve(ctx, a)
			if err != nil {
				return err
			}

			engine, client := a.engine(ctx)
			post, err := postgen.NewComposer(engine, client).Compose(ctx, avatar, args[0], opts)
			if err != nil {
				return a.reportFailure("post", err)
			}

			if post.Image != nil && outPath != "" {
				if err := writeImage(post.Image, outPath); err != nil {
					return err
				}
			}

			return render(a.out, a.output, post, func(w io.Writer) error {
				fmt.Fprintf(w, "%s\n\n%s\n\nImage prompt: %s\n", post.Caption, strings.Join(post.Hashtags, " "), post.ImagePrompt)
				if post.Image != nil {
					if outPath != "" {
						fmt.Fprintf(w, "Image: %s\n", outPath)
					} else {
						fmt.Fprintf(w, "Image: %s\n", post.Image.DataURI())
					}
				}
				return nil
			})
		},
	}
	af.register(cmd)
	cmd.Flags().IntVar(&opts.HashtagCount, "count", postgen.DefaultHashtagCount, "Number of hashtags")
	cmd.Flags().BoolVar(&opts.WithImage, "image", false, "Also generate the image")
	cmd.Flags().StringVar(&opts.AspectRatio, "aspect-ratio", postgen.DefaultAspectRatio, "Image aspect ratio")
	cmd.Flags().StringVar(&outPath, "out", "", "Write the decoded image to this file")
	return cmd
}
