// Command signer uploads a PDF to the signing server, shows a text view of
// the stamped result and saves it next to the input.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/BerylCAtieno/pdf-signer/internal/client"
	"github.com/BerylCAtieno/pdf-signer/internal/config"
	"github.com/BerylCAtieno/pdf-signer/internal/utils"
	"github.com/BerylCAtieno/pdf-signer/internal/viewer"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	fs := flag.NewFlagSet("signer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	serverURL := fs.String("server", cfg.ServerURL, "signing server base URL")
	signAll := fs.Bool("all", false, "stamp every page instead of only the last")
	pageNum := fs.Int("page", 1, "page to show after signing")
	outPath := fs.String("out", "", "where to save the signed PDF (default: <name>_signed.pdf next to the input)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: signer [-server URL] [-all] [-page N] [-out path] file.pdf")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	logger := utils.NewLoggerWithWriter(stderr, cfg.LogLevel)

	file, err := readFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	signer := client.NewHTTPSigner(*serverURL, &http.Client{Timeout: cfg.Timeout})
	o := client.NewOrchestrator(signer, logger)
	if err := o.SetSignAllPages(*signAll); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintf(stdout, "Signing %s ...\n", file.Name)
	if err := o.SelectFile(context.Background(), file); err != nil {
		var vErr *client.ValidationError
		if errors.As(err, &vErr) {
			fmt.Fprintln(stderr, vErr.Message)
			return 2
		}
		fmt.Fprintln(stderr, o.State().Error)
		return 1
	}
	defer o.Back()

	st := o.State()
	if st.ViewerError != "" {
		fmt.Fprintln(stderr, st.ViewerError)
	} else if err := show(stdout, o.Viewer(), *pageNum); err != nil {
		fmt.Fprintln(stderr, err)
	}

	dest := *outPath
	if dest == "" {
		dest = filepath.Join(filepath.Dir(fs.Arg(0)), st.Signed.Name)
	}
	if err := os.WriteFile(dest, st.Signed.Data, 0o644); err != nil {
		fmt.Fprintf(stderr, "save %s: %v\n", dest, err)
		return 1
	}
	fmt.Fprintf(stdout, "Saved %s (%d bytes)\n", dest, st.Signed.Size())
	return 0
}

func readFile(path string) (*client.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	contentType := "application/octet-stream"
	if mt, _, err := mime.ParseMediaType(mime.TypeByExtension(filepath.Ext(path))); err == nil {
		contentType = mt
	}

	return &client.File{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func show(w io.Writer, doc *viewer.Document, pageNum int) error {
	pager := viewer.NewPager(doc.NumPages())
	n := pager.Go(pageNum)

	page, err := doc.Page(n)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Page %d of %d (%.0f x %.0f pt)\n", n, pager.Total(), page.Width, page.Height)
	for _, run := range page.Runs {
		fmt.Fprintf(w, "  %7.1f %7.1f  %-16s %4.1f  %s\n", run.X, run.Y, run.Font, run.Size, run.Text)
	}
	return nil
}
