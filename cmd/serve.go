package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/reslice/analysis"
	"github.com/jsphweid/reslice/config"
	"github.com/jsphweid/reslice/midi"
	"github.com/jsphweid/reslice/model"
	"github.com/jsphweid/reslice/render"
	"github.com/jsphweid/reslice/track"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var (
	serveAddr   string
	serveSave   bool
	serveConfig = config.Default()

	// largest accepted request body
	maxRequestBytes int64 = 8 << 20
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().BoolVar(&serveSave, "save", false, "also write every render to the out dir as <render id>.mid")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the render API",
	Long:  `Accepts analysis results over HTTP and answers with MIDI files.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, config.Default())
		if err != nil {
			return err
		}
		serveConfig = cfg
		log.Info("listening", "addr", serveAddr)
		return http.ListenAndServe(serveAddr, NewRouter())
	},
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/render", HandleRender).Methods("POST")
	router.HandleFunc("/quantize", HandleQuantize).Methods("POST")
	router.HandleFunc("/healthz", handleHealth).Methods("GET")
	return cors.Default().Handler(router)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

// configFor starts from the server config and applies the per request
// overrides.
func configFor(body model.RenderRequestBody) (*config.Config, error) {
	cfg := *serveConfig
	switch config.Mode(body.Mode) {
	case "":
	case config.ModeTracker:
		if cfg.Mode != config.ModeTracker {
			cfg = *config.Default()
		}
	case config.ModeSlicer:
		if cfg.Mode != config.ModeSlicer {
			cfg = *config.Slicer()
		}
	default:
		return nil, fmt.Errorf("unknown mode %q", body.Mode)
	}
	cfg.OutDir = serveConfig.OutDir
	if body.Strategy != "" {
		cfg.Strategy = body.Strategy
	}
	if body.HoldLast != nil {
		cfg.HoldLast = *body.HoldLast
	}
	return &cfg, cfg.Validate()
}

func renderBody(w http.ResponseWriter, r *http.Request) (*config.Config, *render.Output, bool) {
	var input model.RenderRequestBody
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return nil, nil, false
		}
		writeError(w, http.StatusBadRequest, "Could not unmarshal request body: "+err.Error())
		return nil, nil, false
	}

	cfg, err := configFor(input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}

	res := &analysis.Result{BPM: input.BPM, Events: input.Events, Frames: input.Frames}
	out, err := render.Render(cfg, res, log.Default())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}
	return cfg, out, true
}

func HandleRender(w http.ResponseWriter, r *http.Request) {
	cfg, out, ok := renderBody(w, r)
	if !ok {
		return
	}
	id := uuid.New().String()

	s, err := track.Encode(out.Track, cfg.TrackOptions())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if serveSave {
		path := filepath.Join(cfg.OutDir, id+".mid")
		if err := midi.WriteMidiFile(path, s); err != nil {
			log.Error("could not save render", "id", id, "err", err)
		}
	}
	log.Debug("rendered", "id", id, "notes", len(out.Notes), "bpm", out.BPM)

	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("X-Render-Id", id)
	w.Header().Set("X-Note-Count", strconv.Itoa(len(out.Notes)))
	w.Header().Set("X-Bpm", strconv.FormatFloat(out.BPM, 'f', -1, 64))
	w.Write(buf.Bytes())
}

func HandleQuantize(w http.ResponseWriter, r *http.Request) {
	_, out, ok := renderBody(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model.QuantizeResponse{
		RenderId:    uuid.New().String(),
		BPM:         out.BPM,
		TempoMicros: out.Track.TempoMicros,
		Notes:       out.Notes,
		Events:      out.Track.Events,
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "ok")
}
