package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"fjacquet/iso20022-gen/internal/assembler"
	"fjacquet/iso20022-gen/internal/fileutils"
	"fjacquet/iso20022-gen/internal/logging"
	"fjacquet/iso20022-gen/internal/models"

	"github.com/gorilla/mux"
)

// GenerateResponse is the body returned by POST /generate.
type GenerateResponse struct {
	Message         string `json:"message"`
	AppHdr          string `json:"app_hdr"`
	Document        string `json:"document"`
	CompleteMessage string `json:"complete_message"`
	Filename        string `json:"filename"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// generate reads a multipart form with xsd_file, message_code and either
// payload_file or payload_text.
func (s *Server) generate(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return badRequest("invalid multipart form: " + err.Error())
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	code := strings.TrimSpace(r.FormValue("message_code"))
	if code == "" {
		return badRequest("message_code is required")
	}

	schema, err := formFile(r, "xsd_file")
	if err != nil {
		return err
	}
	if schema == nil {
		return badRequest("xsd_file is required")
	}

	payload, err := formFile(r, "payload_file")
	if err != nil {
		return err
	}
	if payload == nil {
		payload = []byte(r.FormValue("payload_text"))
	}
	if len(strings.TrimSpace(string(payload))) == 0 {
		return badRequest("payload_file or payload_text is required")
	}

	result, err := s.generator.Generate(r.Context(), assembler.Request{
		MessageCode: code,
		Payload:     payload,
		Schema:      schema,
	})
	if err != nil {
		return err
	}

	filename := fileutils.DefaultOutputName(code, "xml", s.now())
	path, err := fileutils.SafeJoin(s.opts.StorageDir, filename)
	if err != nil {
		return err
	}
	if err := fileutils.WriteFile(path, []byte(result.Document), models.PermissionOutputFile); err != nil {
		return err
	}

	s.logger.Info("Stored generated message",
		logging.F(logging.FieldMessageCode, code),
		logging.F(logging.FieldOutputFile, filename))

	writeJSON(w, http.StatusOK, GenerateResponse{
		Message:         "Message generated successfully",
		AppHdr:          result.Header,
		Document:        result.Body,
		CompleteMessage: result.Document,
		Filename:        filename,
	})
	return nil
}

// parse reads an XML body and answers with the payload JSON.
func (s *Server) parse(w http.ResponseWriter, r *http.Request) error {
	code := strings.TrimSpace(r.URL.Query().Get("message_code"))
	if code == "" {
		return badRequest("message_code query parameter is required")
	}
	payload, err := s.parser.Parse(r.Body, code)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, payload)
	return nil
}

func (s *Server) download(w http.ResponseWriter, r *http.Request) error {
	path, err := fileutils.SafeJoin(s.opts.StorageDir, mux.Vars(r)["filename"])
	if err != nil {
		return badRequest(err.Error())
	}
	if !fileutils.FileExists(path) {
		return notFound("file not found")
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", `attachment; filename="`+mux.Vars(r)["filename"]+`"`)
	http.ServeFile(w, r, path)
	return nil
}

// formFile returns the content of an uploaded file, or nil when the field
// is absent.
func formFile(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, badRequest("invalid " + field + ": " + err.Error())
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return data, nil
}
