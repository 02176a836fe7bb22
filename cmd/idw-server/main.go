// Command idw-server serves IDW raster interpolation over HTTP.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	idw "github.com/KhangMBui/inverse-distance-weighting-microservice"
)

// clientErrors are validation failures translated to HTTP 400.
var clientErrors = []error{
	idw.ErrInvalidDimensions,
	idw.ErrInvalidBounds,
	idw.ErrNoPoints,
	idw.ErrInvalidGradient,
	idw.ErrInvalidExponent,
}

func errorStatus(err error) int {
	for _, clientError := range clientErrors {
		if errors.Is(err, clientError) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func newRouter(cache *idw.LookupCache, options ...idw.RendererOption) *gin.Engine {
	r := gin.Default()

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/interpolate", func(c *gin.Context) {
		var req idw.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		switch req.Format {
		case "", idw.FormatPNG, idw.FormatTIFF:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported image format %q", req.Format)})
			return
		}
		img, err := req.Render(c.Request.Context(), cache, options...)
		if err != nil {
			c.JSON(errorStatus(err), gin.H{"error": err.Error()})
			return
		}
		var buf bytes.Buffer
		if err := idw.Encode(&buf, img, req.Format); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, req.Format.ContentType(), buf.Bytes())
	})

	return r
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func run() error {
	addr := flag.String("addr", envOr("IDW_ADDR", ":8080"), "listen address")
	cacheSize := flag.Int("lookup-cache-size", 32, "gradient lookup cache size")
	workers := flag.Int("workers", 1, "cell rows are sharded across this many workers per render")
	flag.Parse()

	cache, err := idw.NewLookupCache(*cacheSize)
	if err != nil {
		return err
	}

	return newRouter(cache, idw.WithWorkers(*workers)).Run(*addr)
}

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
