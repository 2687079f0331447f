// Package crud provides a small reusable admin capability: given a gorm
// entity and a form-binding hook, it produces list, create, read, update
// and delete handlers that can be mounted on any route group.
package crud

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ccoveille/go-safecast"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Config describes an entity to expose through admin screens.
type Config[T any] struct {
	// DB is the gorm handle the resource operates on.
	DB *gorm.DB
	// Name is the plural resource name, used as the base path segment.
	Name string
	// ListTemplate and FormTemplate are the templates rendered for the
	// list screen and the create/edit screen.
	ListTemplate string
	FormTemplate string
	// Preloads are association names loaded for the list screen.
	Preloads []string
	// Bind populates the model from the request form and reports
	// validation errors.
	Bind func(c *gin.Context, model *T) error
	// FormData supplies extra template data for the form screen, such as
	// the choices of a reference field. Optional.
	FormData func(c *gin.Context) (gin.H, error)
	// AfterCreate runs once a record has been persisted. Optional.
	AfterCreate func(c *gin.Context, model *T)
}

// Resource exposes generic admin CRUD handlers for one entity type.
type Resource[T any] struct {
	cfg Config[T]
}

// NewResource creates a Resource from the given config.
func NewResource[T any](cfg Config[T]) (*Resource[T], error) {
	if cfg.DB == nil {
		return nil, fmt.Errorf("crud: database handle is required")
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("crud: resource name is required")
	}
	if cfg.Bind == nil {
		return nil, fmt.Errorf("crud: bind func is required")
	}
	return &Resource[T]{cfg: cfg}, nil
}

// Register mounts the CRUD handlers on the given route group.
func (r *Resource[T]) Register(g *gin.RouterGroup) {
	g.GET("", r.List)
	g.GET("/new", r.New)
	g.POST("", r.Create)
	g.GET("/:id", r.Edit)
	g.POST("/:id", r.Update)
	g.POST("/:id/delete", r.Delete)
}

// List renders all records of the entity.
func (r *Resource[T]) List(c *gin.Context) {
	db := r.cfg.DB.WithContext(c.Request.Context())
	for _, preload := range r.cfg.Preloads {
		db = db.Preload(preload)
	}

	var items []T
	if err := db.Find(&items).Error; err != nil {
		log.Error("failed to list records", "resource", r.cfg.Name, "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Failed to load records"})
		return
	}

	c.HTML(http.StatusOK, r.cfg.ListTemplate, gin.H{
		"Resource": r.cfg.Name,
		"Items":    items,
		"User":     c.MustGet("user"),
	})
}

// New renders an empty form for creating a record.
func (r *Resource[T]) New(c *gin.Context) {
	data, err := r.formData(c)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Failed to load form"})
		return
	}
	c.HTML(http.StatusOK, r.cfg.FormTemplate, data)
}

// Create validates the form and persists a new record.
func (r *Resource[T]) Create(c *gin.Context) {
	var model T
	if err := r.cfg.Bind(c, &model); err != nil {
		r.renderFormError(c, &model, err)
		return
	}
	if err := r.cfg.DB.WithContext(c.Request.Context()).Create(&model).Error; err != nil {
		r.renderFormError(c, &model, err)
		return
	}
	if r.cfg.AfterCreate != nil {
		r.cfg.AfterCreate(c, &model)
	}
	c.Redirect(http.StatusFound, "/admin/"+r.cfg.Name)
}

// Edit renders the form for an existing record.
func (r *Resource[T]) Edit(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{})
		return
	}

	var model T
	if err := r.cfg.DB.WithContext(c.Request.Context()).First(&model, id).Error; err != nil {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{})
		return
	}

	data, err := r.formData(c)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Failed to load form"})
		return
	}
	data["Item"] = &model
	data["ID"] = id
	c.HTML(http.StatusOK, r.cfg.FormTemplate, data)
}

// Update validates the form and saves changes to an existing record.
func (r *Resource[T]) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{})
		return
	}

	db := r.cfg.DB.WithContext(c.Request.Context())

	var model T
	if err := db.First(&model, id).Error; err != nil {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{})
		return
	}
	if err := r.cfg.Bind(c, &model); err != nil {
		r.renderFormError(c, &model, err)
		return
	}
	if err := db.Save(&model).Error; err != nil {
		r.renderFormError(c, &model, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/"+r.cfg.Name)
}

// Delete removes a record.
func (r *Resource[T]) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{})
		return
	}

	var model T
	if err := r.cfg.DB.WithContext(c.Request.Context()).Delete(&model, id).Error; err != nil {
		log.Error("failed to delete record", "resource", r.cfg.Name, "id", id, "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Failed to delete record"})
		return
	}
	c.Redirect(http.StatusFound, "/admin/"+r.cfg.Name)
}

func (r *Resource[T]) formData(c *gin.Context) (gin.H, error) {
	data := gin.H{
		"Resource": r.cfg.Name,
		"User":     c.MustGet("user"),
	}
	if r.cfg.FormData == nil {
		return data, nil
	}
	extra, err := r.cfg.FormData(c)
	if err != nil {
		log.Error("failed to load form data", "resource", r.cfg.Name, "error", err)
		return nil, err
	}
	for k, v := range extra {
		data[k] = v
	}
	return data, nil
}

func (r *Resource[T]) renderFormError(c *gin.Context, model *T, bindErr error) {
	data, err := r.formData(c)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Failed to load form"})
		return
	}
	data["Item"] = model
	data["Error"] = bindErr.Error()
	c.HTML(http.StatusBadRequest, r.cfg.FormTemplate, data)
}

func parseID(raw string) (uint, error) {
	val, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return safecast.ToUint(val)
}
