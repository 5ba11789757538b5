package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"shorttrack/internal/blobstore"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <item-id> <video-file>",
		Short: "Upload the produced video and hand the item to review",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := ctx.actorID()
			if err != nil {
				return err
			}
			path := args[1]
			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open video file: %w", err)
			}
			defer file.Close()

			info, err := file.Stat()
			if err != nil {
				return fmt.Errorf("stat video file: %w", err)
			}
			mimeType := mime.TypeByExtension(filepath.Ext(path))

			return ctx.withServices(cmd.Context(), func(c context.Context, svc *cliServices) error {
				ref, err := svc.blobs.Upload(c, filepath.Base(path), file, info.Size(), mimeType, uploadProgress(cmd))
				if err != nil {
					return err
				}
				item, err := svc.tracker.Complete(c, args[0], actor, ref)
				if err != nil {
					// The transition failed after the blob landed; drop the
					// orphan so a retry starts clean.
					_ = svc.blobs.Delete(c, *ref)
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout())
				printItemLine(cmd, item)
				return nil
			})
		},
	}
	return cmd
}

// uploadProgress renders an in-place percentage on interactive terminals
// and stays quiet otherwise.
func uploadProgress(cmd *cobra.Command) blobstore.ProgressFunc {
	out, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !(isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())) {
		return nil
	}
	return func(percent int) {
		fmt.Fprintf(out, "\rUploading... %3d%%", percent)
	}
}
