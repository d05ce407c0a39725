package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/music-hub/internal/api/dto"
	"github.com/spec-kit/music-hub/internal/auth"
	"github.com/spec-kit/music-hub/internal/repository"
	"github.com/spec-kit/music-hub/internal/service"
	apperrors "github.com/spec-kit/music-hub/pkg/util"
)

// MediaHandler exposes the catalog endpoints: upload, listing/search, blob
// streaming, likes, and comments.
type MediaHandler struct {
	catalog *service.CatalogService
}

// NewMediaHandler constructs handler.
func NewMediaHandler(catalog *service.CatalogService) *MediaHandler {
	return &MediaHandler{catalog: catalog}
}

// Upload handles POST /upload. The multipart file part is streamed into blob
// storage, never read whole into memory.
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("file part required", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.MapError(err)
	}
	defer file.Close()

	uploadedBy := ""
	if principal, ok := auth.PrincipalFromContext(c); ok {
		uploadedBy = principal.Account.Username
	}

	record, err := h.catalog.Upload(c.Context(), service.UploadInput{
		OriginalFilename: fileHeader.Filename,
		Title:            c.FormValue("title"),
		Artist:           c.FormValue("artist"),
		Genre:            c.FormValue("genre"),
		UploadedBy:       uploadedBy,
		Body:             file,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"message": "file uploaded successfully",
			"media":   dto.NewMediaResponse(*record),
		},
	})
}

// List handles GET /songs. Query filters switch the call to a search;
// without filters the full cached listing is returned.
func (h *MediaHandler) List(c *fiber.Ctx) error {
	title := c.Query("title")
	artist := c.Query("artist")
	genre := c.Query("genre")

	if title == "" && artist == "" && genre == "" {
		records, err := h.catalog.List(c.Context())
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": dto.NewMediaResponseList(records)})
	}

	filter := repository.MediaFilter{}
	if title != "" {
		filter.Title = &title
	}
	if artist != "" {
		filter.Artist = &artist
	}
	if genre != "" {
		filter.Genre = &genre
	}

	records, err := h.catalog.Search(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMediaResponseList(records)})
}

// Stream handles GET /files/:identifier, piping blob bytes to the client.
func (h *MediaHandler) Stream(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	_, reader, size, contentType, err := h.catalog.FetchBlob(c.Context(), identifier)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, contentType)
	if size > 0 {
		return c.SendStream(reader, int(size))
	}
	return c.SendStream(reader)
}

// Like handles POST /songs/:id/like.
func (h *MediaHandler) Like(c *fiber.Ctx) error {
	actor := ""
	if principal, ok := auth.PrincipalFromContext(c); ok {
		actor = principal.Account.Username
	}

	likes, err := h.catalog.Like(c.Context(), c.Params("id"), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"likes": likes}})
}

// AddComment handles POST /songs/:id/comments. A bearer token is optional
// unless the service is configured to require it; when present the comment
// author is the authenticated username.
func (h *MediaHandler) AddComment(c *fiber.Ctx) error {
	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	author := req.Author
	authenticated := false
	if principal, ok := auth.PrincipalFromContext(c); ok {
		author = principal.Account.Username
		authenticated = true
	}

	comment, err := h.catalog.Comment(c.Context(), c.Params("id"), author, req.Content, authenticated)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCommentResponse(*comment)})
}

// ListComments handles GET /songs/:id/comments.
func (h *MediaHandler) ListComments(c *fiber.Ctx) error {
	comments, err := h.catalog.ListComments(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCommentResponseList(comments)})
}
