package main

import (
	"log"
	"strings"
	"time"
	"uploader/config"
	"uploader/db"
	"uploader/handlers"
	"uploader/models"
	"uploader/storage"
	"uploader/utils"
	"uploader/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

func main() {
	db.Init()
	records, err := models.Init(db.Instance)
	if err != nil {
		log.Fatalf("Cannot create tables: %v", err)
	}
	blobs, err := storage.Init()
	if err != nil {
		log.Fatalf("Cannot initialize storage: %v", err)
	}
	variant := handlers.VariantFor(config.VARIANT, config.MaxUploadSize())
	log.Printf("Running the %s (max upload %d MB)", variant.Title, config.MaxUploadSize()>>20)

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	router.MaxMultipartMemory = 8 << 20
	router.Use(utils.RequestID)
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Split(config.CORS_ORIGINS, ","),
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length", utils.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/uploads", "/download", "/thumb"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, individual end-points can override that
	router.SetHTMLTemplate(web.LoadTemplates())

	handlers.New(variant, records, blobs).Register(router)
	ui := &web.UI{Config: web.NewClientConfig(variant, config.BASE_URL)}
	ui.Register(router)

	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.ListenAddress())
	}
	log.Fatalf("Server stopped: %v", err)
}
