package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskvault/internal/application"
	"taskvault/internal/interface/middleware"
	"taskvault/pkg/response"
	"taskvault/pkg/validation"
)

type TaskHandler struct {
	Svc    *application.TaskService
	Logger *logrus.Logger
}

func NewTaskHandler(svc *application.TaskService, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{Svc: svc, Logger: logger}
}

type createTaskRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

type updateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=3,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Completed   *bool   `json:"completed"`
}

func (h *TaskHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	tasks, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, tasks, "tasks", gin.H{"count": len(tasks)})
}

func (h *TaskHandler) Get(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	task, err := h.Svc.Get(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, task, "task", nil)
}

func (h *TaskHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	task, err := h.Svc.Create(c.Request.Context(), application.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	}, uid)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, task, "task created", nil)
}

func (h *TaskHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	task, err := h.Svc.Update(c.Request.Context(), c.Param("id"), application.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}, uid)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, task, "task updated", nil)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	task, err := h.Svc.Delete(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, task, "task deleted", nil)
}

func (h *TaskHandler) Search(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "missing query", gin.H{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.Search(c.Request.Context(), uid, q, size)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}

func (h *TaskHandler) fail(c *gin.Context, err error) {
	status, msg := statusFromErr(err)
	if status == http.StatusInternalServerError && h.Logger != nil {
		h.Logger.WithError(err).Error("task operation failed")
	}
	response.Fail(c, status, msg, nil)
}
