package recordings

import (
	_ "embed"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"readaloud/internal/recorder"
	"readaloud/internal/session"
)

//go:embed index.html
var indexPage []byte

// Controller exposes the recording workflow over HTTP. One instance is built
// at startup around the shared recorder service.
type Controller struct {
	svc *recorder.Service
}

// GetIndex serves the recorder UI
func (ct *Controller) GetIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}

// UploadSentences handles POST requests with a sentence file and responds
// with the ordered list of non-empty sentences
func (ct *Controller) UploadSentences(c *gin.Context) {
	sessionID := session.GetOrCreateID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.String(http.StatusBadRequest, "missing sentence file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.String(http.StatusBadRequest, "could not open sentence file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.String(http.StatusBadRequest, "could not read sentence file")
		return
	}

	list, err := ct.svc.Ingest(c.Request.Context(), sessionID, data)
	if errors.Is(err, recorder.ErrInvalidText) {
		c.String(http.StatusBadRequest, "sentence file must be plain text")
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to store sentence list")
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetSentences returns the session's persisted sentence list so the client
// can restore its state on reload
func (ct *Controller) GetSentences(c *gin.Context) {
	sessionID := session.GetOrCreateID(c)

	list, err := ct.svc.Sentences(c.Request.Context(), sessionID)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load sentence list")
		return
	}

	c.JSON(http.StatusOK, list)
}

// UploadAudio handles POST requests with one audio blob and its sentence
// text. The sentence_idx field is accepted for client compatibility but
// identity is derived from the sentence text alone.
func (ct *Controller) UploadAudio(c *gin.Context) {
	sessionID := session.GetOrCreateID(c)

	sentence := c.PostForm("sentence_text")
	if sentence == "" {
		c.String(http.StatusBadRequest, "missing sentence_text")
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.String(http.StatusBadRequest, "missing audio")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.String(http.StatusBadRequest, "could not open audio")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		c.String(http.StatusBadRequest, "could not read audio")
		return
	}

	if _, err := ct.svc.Record(c.Request.Context(), sessionID, sentence, audio); err != nil {
		c.String(http.StatusInternalServerError, "failed to store recording")
		return
	}

	c.String(http.StatusOK, "Audio received")
}

// DownloadRecordings packages the session's recordings into a ZIP archive.
// The download is a one-time claim: the session's blobs and mapping are gone
// once the archive is returned.
func (ct *Controller) DownloadRecordings(c *gin.Context) {
	sessionID := session.GetOrCreateID(c)

	archive, err := ct.svc.Package(c.Request.Context(), sessionID)
	if errors.Is(err, recorder.ErrNoRecordings) {
		c.String(http.StatusNotFound, "No recordings found")
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to package recordings")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="recordings.zip"`)
	c.Data(http.StatusOK, "application/zip", archive)
}
