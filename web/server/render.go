package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
	"github.com/df07/go-recursive-raytracer/pkg/targetarea"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene             string             `json:"scene"`             // Scene ID (e.g., "mirrors")
	Width             int                `json:"width"`             // Image width
	Height            int                `json:"height"`            // Image height
	AntiAliasing      int                `json:"antiAliasing"`      // Rays per pixel
	DOFRays           int                `json:"dofRays"`           // Rays per depth of field beam
	AdaptiveDepth     int                `json:"adaptiveDepth"`     // Adaptive supersampling depth, 0 disables it
	AdaptiveThreshold float64            `json:"adaptiveThreshold"` // Adaptive supersampling color threshold
	Pattern           targetarea.Pattern `json:"pattern"`           // Beam sampling pattern
	Threads           int                `json:"threads"`           // Thread directive
}

// RenderResult is the finished image sent via SSE
type RenderResult struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels  int64   `json:"totalPixels"`
	TotalRays    int64   `json:"totalRays"`
	RaysPerPixel float64 `json:"raysPerPixel"`
	Workers      int     `json:"workers"`
	Strategy     string  `json:"strategy"`
}

type renderOutcome struct {
	stats renderer.RenderStats
	err   error
}

// handleRender renders a scene and streams console lines followed by the image via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := scene.Create(req.Scene)
	if err != nil {
		s.sendSSEError(w, err.Error())
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	sink := renderer.NewImageSink(req.Width, req.Height)
	camera, err := s.newCamera(req, sceneObj, sink, webLogger)
	if err != nil {
		s.sendSSEError(w, err.Error())
		return
	}

	// Rendering runs aside so that console lines are streamed while it progresses.
	// Only this goroutine writes to the response.
	startTime := time.Now()
	done := make(chan renderOutcome, 1)
	go func() {
		stats, err := camera.Render(r.Context())
		done <- renderOutcome{stats: stats, err: err}
	}()

	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)
		case outcome := <-done:
			if outcome.err != nil {
				webLogger.Printf("Render failed: %v\n", outcome.err)
			}
			s.drainConsole(w, consoleChan)
			if outcome.err != nil {
				s.sendSSEError(w, fmt.Sprintf("Render error: %v", outcome.err))
				return
			}
			s.sendResult(w, sink.Image(), outcome.stats, time.Since(startTime))
			return
		}
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 400, 1, 2000); err != nil {
		return nil, err
	}
	if req.AntiAliasing, err = parseIntParam(query, "antiAliasing", 1, 1, 1024); err != nil {
		return nil, err
	}
	if req.DOFRays, err = parseIntParam(query, "dofRays", 1, 1, 1024); err != nil {
		return nil, err
	}
	if req.AdaptiveDepth, err = parseIntParam(query, "adaptiveDepth", 0, 0, 8); err != nil {
		return nil, err
	}
	if req.AdaptiveThreshold, err = parseFloatParam(query, "adaptiveThreshold", 0.05, 0, 1); err != nil {
		return nil, err
	}
	if req.Threads, err = parseIntParam(query, "threads", renderer.AllButSpare, renderer.AllButSpare, 1024); err != nil {
		return nil, err
	}
	req.Pattern = targetarea.Jittered
	if name := query.Get("pattern"); name != "" {
		if req.Pattern, err = targetarea.ParsePattern(name); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// newCamera sets up a camera on the scene's suggested view
func (s *Server) newCamera(req *RenderRequest, sceneObj *scene.Scene, sink renderer.ImageWriter, logger core.Logger) (*renderer.Camera, error) {
	return renderer.NewCameraBuilder().
		SetView(sceneObj.View, req.Width, req.Height, req.DOFRays).
		SetAntiAliasing(req.AntiAliasing).
		SetAdaptiveSuperSampling(req.AdaptiveDepth, req.AdaptiveThreshold).
		SetSamplingPattern(req.Pattern).
		SetMultithreading(req.Threads).
		SetDebugPrint(500 * time.Millisecond).
		SetImageWriter(sink).
		SetRayTracer(renderer.NewSimpleRayTracer(sceneObj)).
		SetLogger(logger).
		Build()
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// drainConsole sends the console lines still buffered after the render ended
func (s *Server) drainConsole(w http.ResponseWriter, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)
		default:
			return
		}
	}
}

func (s *Server) sendConsoleMessage(w http.ResponseWriter, msg ConsoleMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, "console", string(data))
}

// sendResult sends the finished image followed by the completion event
func (s *Server) sendResult(w http.ResponseWriter, img image.Image, stats renderer.RenderStats, elapsed time.Duration) {
	imageData, err := s.imageToBase64PNG(img)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	data, err := json.Marshal(RenderResult{
		ImageData: imageData,
		Stats: Stats{
			TotalPixels:  stats.TotalPixels,
			TotalRays:    stats.TotalRays,
			RaysPerPixel: stats.RaysPerPixel(),
			Workers:      stats.Workers,
			Strategy:     stats.Strategy,
		},
		ElapsedMs: elapsed.Milliseconds(),
	})
	if err != nil {
		s.sendSSEError(w, err.Error())
		return
	}
	s.sendSSEEvent(w, "image", string(data))
	s.sendSSEEvent(w, "complete", "Rendering completed")
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendSSEError sends an error via SSE
func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	return s.sendSSEEvent(w, "error", message)
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
