package http

// registerV1Routes sets up the dashboard API under /api/v1.
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware())
	if s.cfg.BearerToken != "" {
		v1.Use(bearerAuthMiddleware(s.cfg.BearerToken))
	}

	v1.GET("/meta", s.handleV1Meta)
	v1.GET("/dashboard", s.handleV1Dashboard)
	v1.GET("/daily", s.handleV1Daily)
	v1.GET("/hourly", s.handleV1Hourly)
	v1.GET("/correlation", s.handleV1Correlation)
	v1.GET("/export.xlsx", s.handleV1Export)
}
