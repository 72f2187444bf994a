package app

// registerRoutes sets up all HTTP handlers for the live monitor.
func (a *App) registerRoutes() {
	a.Mux.HandleFunc("/api/latest", a.handleLatest)
	a.Mux.HandleFunc("/api/records", a.handleRecords)
	a.Mux.HandleFunc("/api/summary", a.handleSummary)
	a.Mux.HandleFunc("/ws", a.handleWS)
}
