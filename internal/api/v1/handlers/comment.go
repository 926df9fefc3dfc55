package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyhub-dev/studyhub/internal/api/middleware"
	"github.com/studyhub-dev/studyhub/internal/db/models"
)

// CommentHandler handles HTTP requests for comment and attachment operations
type CommentHandler struct {
	*APIHandler
}

// NewCommentHandler creates a new CommentHandler instance
func NewCommentHandler(api *APIHandler) *CommentHandler {
	return &CommentHandler{APIHandler: api}
}

// CommentCreateParams defines the body for creating a comment
type CommentCreateParams struct {
	Body string `json:"body"`
}

// Validate validates the parameters for creating a comment
func (p CommentCreateParams) Validate() error {
	if p.Body == "" {
		return errors.New(ErrMsgCommentBodyRequired)
	}
	return nil
}

// CreateComment handles creating a comment on a task
func (h *CommentHandler) CreateComment(c *fiber.Ctx) error {
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	var params CommentCreateParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(ErrMsgInvalidReqBody))
	}
	if err := params.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	comment := models.Comment{
		TaskID:   taskID,
		AuthorID: middleware.UserID(c),
		Body:     params.Body,
	}
	if err := h.comment.Create(c.Context(), &comment); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(errNotFound(ErrMsgTaskNotFound))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgCommentCreateFailed))
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// ListComments handles listing all comments for a task
func (h *CommentHandler) ListComments(c *fiber.Ctx) error {
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	comments, err := h.comment.ListByTask(c.Context(), taskID, getPaginationOptions(c.QueryInt("page", 1)))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgCommentListFailed))
	}
	return c.JSON(comments)
}

// DeleteComment handles deleting a comment
func (h *CommentHandler) DeleteComment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	if err := h.comment.Delete(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgCommentDeleteFailed))
	}
	return c.JSON(Response{Slug: SuccessSlug})
}

// UploadAttachment handles uploading a file attachment for a task
func (h *CommentHandler) UploadAttachment(c *fiber.Ctx) error {
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("file is required"))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("unreadable file"))
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgAttachmentSaveFailed))
	}

	key := uuid.NewString()
	if err := h.files.Put(c.Context(), key, data); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgAttachmentSaveFailed))
	}

	attachment := models.Attachment{
		TaskID:     taskID,
		UploaderID: middleware.UserID(c),
		FileName:   fileHeader.Filename,
		MimeType:   fileHeader.Header.Get(fiber.HeaderContentType),
		SizeBytes:  fileHeader.Size,
		StorageKey: key,
	}
	if err := h.attachment.Create(c.Context(), &attachment); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgAttachmentSaveFailed))
	}
	return c.Status(fiber.StatusCreated).JSON(attachment)
}

// ListAttachments handles listing attachment metadata for a task
func (h *CommentHandler) ListAttachments(c *fiber.Ctx) error {
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	attachments, err := h.attachment.ListByTask(c.Context(), taskID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgAttachmentListFailed))
	}
	return c.JSON(attachments)
}

// DownloadAttachment handles streaming an attachment's bytes
func (h *CommentHandler) DownloadAttachment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	attachment, err := h.attachment.GetByID(c.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(errNotFound(ErrMsgAttachmentNotFound))
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgAttachmentFetchFailed))
	}

	data, err := h.files.Get(c.Context(), attachment.StorageKey)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(ErrMsgAttachmentFetchFailed))
	}

	c.Set(fiber.HeaderContentType, attachment.MimeType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+attachment.FileName+`"`)
	return c.Send(data)
}
