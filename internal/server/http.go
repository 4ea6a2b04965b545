package server

import (
	"encoding/json"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/conf"
	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/service"
)

// NewHTTPServer 创建 HTTP 服务器并注册全部路由
func NewHTTPServer(c *conf.Server, s *service.PMService) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Http.Addr != "" {
		opts = append(opts, http.Address(c.Http.Addr))
	}
	if c.Http.Timeout != "" {
		if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)

	r := srv.Route("/v1")
	r.POST("/projects", s.CreateProject)
	r.GET("/projects", s.ListProjects)
	r.GET("/projects/{id}", s.GetProject)
	r.DELETE("/projects/{id}", s.DeleteProject)
	r.POST("/projects/{id}/tasks/import/csv", s.ImportCSV)
	r.POST("/projects/{id}/tasks/import/board", s.ImportBoard)
	r.GET("/projects/{id}/tasks", s.ListTasks)
	r.POST("/tasks", s.CreateTask)
	r.POST("/reports/generate/{project_id}", s.GenerateReport)
	r.GET("/reports/{project_id}/latest", s.LatestReport)
	r.GET("/reports/{project_id}/timeline-status", s.TimelineStatus)
	r.GET("/reports/{project_id}/stakeholder-email", s.StakeholderEmail)

	srv.HandleFunc("/health", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	return srv
}
