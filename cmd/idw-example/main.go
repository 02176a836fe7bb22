// Command idw-example renders a single interpolation request from a JSON
// file to an image file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	idw "github.com/KhangMBui/inverse-distance-weighting-microservice"
)

func run() error {
	output := flag.String("o", "out.png", "output file")
	format := flag.String("format", "", "image format (png or tiff, default from request)")
	workers := flag.Int("workers", 1, "render workers")
	flag.Parse()

	if flag.NArg() != 1 {
		return errors.New("syntax: idw-example request.json")
	}
	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		return err
	}
	var req idw.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return err
	}
	if *format != "" {
		req.Format = idw.Format(*format)
	}

	img, err := req.Render(context.Background(), nil, idw.WithWorkers(*workers))
	if err != nil {
		return err
	}

	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	if err := idw.Encode(f, img, req.Format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
