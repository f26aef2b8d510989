package web

import (
	"embed"
	"html/template"
	"net/http"
	"strings"
	"uploader/handlers"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// ClientConfig is everything the page needs to talk to the API of a variant
type ClientConfig struct {
	Variant      string `json:"variant"`
	Title        string `json:"title"`
	BaseURL      string `json:"baseURL"`
	ListPath     string `json:"listPath"`
	ListKey      string `json:"listKey"`
	UploadPath   string `json:"uploadPath"`
	DeletePrefix string `json:"deletePrefix"`
	FieldName    string `json:"fieldName"`
	MessageKey   string `json:"messageKey"`
	NameField    string `json:"nameField"`
	Accept       string `json:"accept"`
	Gallery      bool   `json:"gallery"`
}

func NewClientConfig(variant handlers.Variant, baseURL string) ClientConfig {
	cfg := ClientConfig{
		Variant:      variant.Name,
		Title:        variant.Title,
		BaseURL:      strings.TrimSuffix(baseURL, "/"),
		ListPath:     variant.ListPaths[0],
		ListKey:      variant.ListKey,
		UploadPath:   variant.UploadPath,
		DeletePrefix: variant.DeletePrefix(),
		FieldName:    variant.FieldName,
		MessageKey:   variant.MessageKey,
		NameField:    "filename",
		Gallery:      variant.PrefixFromName,
	}
	if cfg.Gallery {
		cfg.NameField = "cover"
	}
	accept := []string{}
	for _, ext := range variant.AllowedExts {
		accept = append(accept, "."+ext)
	}
	cfg.Accept = strings.Join(accept, ",")
	return cfg
}

// LoadTemplates parses the embedded page templates
func LoadTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.tmpl"))
}

type UI struct {
	Config ClientConfig
}

// Register adds the page routes. The router must have LoadTemplates() set as its HTML templates.
func (ui *UI) Register(router gin.IRouter) {
	router.GET("/", ui.Index)
	router.GET("/robots.txt", DisallowRobots)
}

func (ui *UI) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"title":  ui.Config.Title,
		"config": ui.Config,
	})
}

func DisallowRobots(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nDisallow: /\n")
}
