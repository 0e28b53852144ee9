package cmd

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jsphweid/chordsmith/analysis"
	"github.com/jsphweid/chordsmith/constants"
	"github.com/jsphweid/chordsmith/db"
	"github.com/jsphweid/chordsmith/model"
	"github.com/jsphweid/chordsmith/util"
)

var pipeline *analysis.Pipeline
var caps analysis.Capabilities

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the analysis HTTP service",
	Long:  `Runs the analysis HTTP service`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// InitPipeline builds the shared pipeline and capability descriptor.
// Exported so the e2e tests can exercise the handlers directly.
func InitPipeline() {
	caps = analysis.DetectCapabilities()
	pipeline = analysis.New(caps)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

// requestAudio resolves the audio file for a request: either a local
// path named in a JSON body or a multipart upload stored under the
// temp audio dir. Uploads get a cleanup func that removes the copy.
func requestAudio(r *http.Request) (path string, id string, cleanup func(), err error) {
	cleanup = func() {}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(64 << 20); err != nil {
			return "", "", cleanup, errors.Wrap(err, "parsing upload")
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", "", cleanup, errors.New("no file field in upload")
		}
		defer file.Close()

		id = r.FormValue("id")
		if id == "" {
			id = uuid.New().String()
		}
		if err := util.EnsureDir(constants.GetAudioDir()); err != nil {
			return "", "", cleanup, errors.Wrap(err, "creating audio dir")
		}
		dst := filepath.Join(constants.GetAudioDir(), util.SafeFileBase(id)+filepath.Ext(header.Filename))
		out, err := os.Create(dst)
		if err != nil {
			return "", "", cleanup, errors.Wrap(err, "storing upload")
		}
		if _, err := io.Copy(out, file); err != nil {
			out.Close()
			os.Remove(dst)
			return "", "", cleanup, errors.Wrap(err, "storing upload")
		}
		out.Close()
		cleanup = func() {
			if err := os.Remove(dst); err != nil {
				logrus.WithError(err).Warnf("could not clean up %v", dst)
			}
		}
		return dst, id, cleanup, nil
	}

	var body model.AnalyzeRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return "", "", cleanup, errors.New("could not parse request body")
	}
	if body.Path == "" {
		return "", "", cleanup, errors.New("no path provided")
	}
	id = body.Id
	if id == "" {
		id = uuid.New().String()
	}
	return body.Path, id, cleanup, nil
}

// HandleAnalyze runs the pipeline for one request and responds with the
// chord timeline, the rendered midi path and a status narrative. Partial
// results are always included; only request-shape problems get a 4xx.
func HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	audioPath, id, cleanup, err := requestAudio(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	var resp model.AnalyzeResponse
	resp.AudioPath = audioPath

	chords, status := pipeline.AnalyzeChords(audioPath)
	if chords == nil {
		// always a JSON array, never null
		chords = []string{}
	}
	resp.Chords = chords
	resp.Message = "chord recognition: " + string(status)

	if len(chords) > 0 {
		outPath := filepath.Join(constants.GetMidiDir(), analysis.OutputName(id))
		rendered, midiStatus := pipeline.RenderMidi(chords, outPath, constants.ChordDurationS)
		resp.Message += "; midi generation: " + string(midiStatus)
		if midiStatus == model.StatusSuccess {
			resp.MidiFilePath = rendered
			maybeStore(id, chords, rendered)
		}
	} else {
		resp.Message += "; no chords recognized to generate midi"
	}

	json.NewEncoder(w).Encode(resp)
}

func maybeStore(id string, chords []string, midiPath string) {
	if caps.AnalysesTable == "" {
		return
	}
	rec := model.AnalysisRecord{Id: id, Chords: chords, MidiPath: midiPath}
	if err := db.PutAnalysis(caps.AnalysesTable, rec); err != nil {
		logrus.WithError(err).Warn("could not store analysis record")
	}
}

// HandleGetAnalysis fetches a stored analysis when the result store is
// enabled.
func HandleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if caps.AnalysesTable == "" {
		writeError(w, http.StatusNotFound, "result store is not enabled")
		return
	}
	id := mux.Vars(r)["id"]
	recs, err := db.GetAnalyses(caps.AnalysesTable, []string{id})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rec, ok := recs[id]
	if !ok {
		writeError(w, http.StatusNotFound, "no analysis with id "+id)
		return
	}
	json.NewEncoder(w).Encode(rec)
}

func serve() {
	InitPipeline()
	if err := util.EnsureDir(constants.GetAudioDir()); err != nil {
		panic("could not create audio dir: " + err.Error())
	}
	if err := util.EnsureDir(constants.GetMidiDir()); err != nil {
		panic("could not create midi dir: " + err.Error())
	}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/analyze", HandleAnalyze).Methods("POST")
	router.HandleFunc("/analyses/{id}", HandleGetAnalysis).Methods("GET")
	router.PathPrefix("/midi/").Handler(
		http.StripPrefix("/midi/", http.FileServer(http.Dir(constants.GetMidiDir()))))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logrus.Infof("listening on :%v", port)
	logrus.Fatal(http.ListenAndServe(":"+port, cors.Default().Handler(router)))
}
