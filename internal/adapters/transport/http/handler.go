package http

import (
	"net/http"
	"time"

	"github.com/aligntogether/taskhub/internal/adapters/transport/http/dto"
	"github.com/aligntogether/taskhub/internal/adapters/transport/http/middleware"
	authsvc "github.com/aligntogether/taskhub/internal/app/auth/service"
	todosvc "github.com/aligntogether/taskhub/internal/app/todo/service"
	taskErrors "github.com/aligntogether/taskhub/internal/domain/task/errors"
	"github.com/aligntogether/taskhub/internal/domain/task/token"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	auth   authsvc.Service
	todos  todosvc.Service
	tokens token.Util
}

func NewHandler(auth authsvc.Service, todos todosvc.Service, tokens token.Util) *Handler {
	return &Handler{auth: auth, todos: todos, tokens: tokens}
}

// RegisterRoutes wires the REST surface. Register and login are open;
// everything else sits behind the bearer-token middleware.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	auth := r.Group("/auth")
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)

	authed := auth.Group("", middleware.Auth(h.tokens))
	authed.POST("/refresh", h.refresh)
	authed.GET("/verify", h.verify)

	todos := r.Group("/todos", middleware.Auth(h.tokens))
	todos.GET("", h.listTodos)
	todos.POST("", h.createTodo)
	todos.PUT("/:id", h.updateTodo)
	todos.DELETE("/:id", h.deleteTodo)
}

func (h *Handler) register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required"})
		return
	}

	if _, err := h.auth.Register(c.Request.Context(), body); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "user registered successfully"})
}

func (h *Handler) login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required"})
		return
	}

	session, err := h.auth.Login(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSessionResponse(session))
}

func (h *Handler) refresh(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}

	session, err := h.auth.Refresh(c.Request.Context(), uid)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSessionResponse(session))
}

func (h *Handler) verify(c *gin.Context) {
	raw, _ := middleware.BearerToken(c)

	user, err := h.auth.Verify(c.Request.Context(), raw)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": dto.NewUserResponse(user)})
}

func (h *Handler) listTodos(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}

	todos, err := h.todos.List(c.Request.Context(), uid, c.Query("status"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTodoListResponse(todos))
}

func (h *Handler) createTodo(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}

	var body dto.CreateTodoDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title is required"})
		return
	}

	todo, err := h.todos.Create(c.Request.Context(), uid, body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewTodoResponse(todo))
}

func (h *Handler) updateTodo(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "todo not found"})
		return
	}

	var body dto.UpdateTodoDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed request body"})
		return
	}

	todo, err := h.todos.Update(c.Request.Context(), id, uid, body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTodoResponse(todo))
}

func (h *Handler) deleteTodo(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "todo not found"})
		return
	}

	if err := h.todos.Remove(c.Request.Context(), id, uid); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "todo removed"})
}

// handleError is the single mapping from the error taxonomy to HTTP statuses.
func handleError(c *gin.Context, err error) {
	switch {
	case taskErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case taskErrors.IsInvalidCredentials(err):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
	case taskErrors.IsInvalidToken(err):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
	case taskErrors.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{"message": "not authorized"})
	case taskErrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, gin.H{"message": "user already exists"})
	case taskErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
