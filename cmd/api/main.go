package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"childcare-insights-go/internal/aggregator"
	"childcare-insights-go/internal/charts"
	"childcare-insights-go/internal/dataset"
	"childcare-insights-go/internal/logger"
	"childcare-insights-go/internal/report"
	"childcare-insights-go/internal/types"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "childcare-insights-go").Info("starting service")

	dataPath := envOr("DATASET_PATH", "attached_assets/df_clean.csv")
	cache := dataset.NewCache(dataPath)

	log.WithField("dataset_path", dataPath).Info("loading survey dataset")
	records, err := cache.Records()
	if err != nil {
		log.WithError(err).Fatal("failed to load survey dataset")
	}
	log.WithField("records", len(records)).Info("survey dataset loaded")

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	})

	// full report: every aggregate for the requested filter
	mux.HandleFunc("/api/report", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "report")
		base, f, ok := requestView(w, r, cache, reqLog)
		if !ok {
			return
		}
		rep := report.Build(base, f)
		reqLog.WithField("rows", rep.Total).WithField("duration_ms", rep.DurationMs).Info("report built")
		writeJSON(w, reqLog, rep)
	})

	mux.HandleFunc("/api/nps", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "nps")
		view, ok := filteredRecords(w, r, cache, reqLog)
		if !ok {
			return
		}
		dist := aggregator.NPSDistribution(view)
		writeJSON(w, reqLog, map[string]interface{}{
			"distribution": dist,
			"overall_nps":  dist.Score(),
		})
	})

	mux.HandleFunc("/api/correlation", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "correlation")
		view, ok := filteredRecords(w, r, cache, reqLog)
		if !ok {
			return
		}
		writeJSON(w, reqLog, aggregator.Correlate(view))
	})

	mux.HandleFunc("/api/categories", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "categories")
		view, ok := filteredRecords(w, r, cache, reqLog)
		if !ok {
			return
		}
		writeJSON(w, reqLog, map[string]interface{}{
			"top_categories": aggregator.Top(aggregator.CategoryCounts(view), 10),
			"top_concerns":   aggregator.TopConcerns(view),
		})
	})

	mux.HandleFunc("/api/trends/weekly", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "trends.weekly")
		view, ok := filteredRecords(w, r, cache, reqLog)
		if !ok {
			return
		}
		writeJSON(w, reqLog, aggregator.WeeklyResponseRate(view))
	})

	mux.HandleFunc("/api/trends/monthly", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "trends.monthly")
		view, ok := filteredRecords(w, r, cache, reqLog)
		if !ok {
			return
		}
		writeJSON(w, reqLog, aggregator.MonthlyTrends(view))
	})

	mux.HandleFunc("/api/trends/nps", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "trends.nps")
		view, ok := filteredRecords(w, r, cache, reqLog)
		if !ok {
			return
		}
		writeJSON(w, reqLog, aggregator.NPSTrend(view))
	})

	// rendered dashboard page
	mux.HandleFunc("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "dashboard")
		base, f, ok := requestView(w, r, cache, reqLog)
		if !ok {
			return
		}
		rep := report.Build(base, f)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := charts.RenderDashboard(w, rep); err != nil {
			reqLog.WithError(err).Error("dashboard render failed")
		}
	})

	// drop the cached dataset and reload from source
	mux.HandleFunc("/api/reload", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "reload")
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		cache.Invalidate()
		records, err := cache.Records()
		if err != nil {
			reqLog.WithError(err).Error("reload failed")
			http.Error(w, "reload failed", http.StatusInternalServerError)
			return
		}
		reqLog.WithField("records", len(records)).Info("dataset reloaded")
		writeJSON(w, reqLog, map[string]interface{}{"records": len(records)})
	})

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

// requestView loads the cached dataset and parses the filter query
// params, writing the HTTP error itself when either fails.
func requestView(w http.ResponseWriter, r *http.Request, cache *dataset.Cache, reqLog *logrus.Entry) ([]types.SurveyRecord, dataset.Filter, bool) {
	f, err := parseFilter(r)
	if err != nil {
		reqLog.WithError(err).Warn("bad filter params")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, dataset.Filter{}, false
	}
	base, err := cache.Records()
	if err != nil {
		reqLog.WithError(err).Error("dataset load error")
		http.Error(w, "dataset load error", http.StatusInternalServerError)
		return nil, dataset.Filter{}, false
	}
	return base, f, true
}

func filteredRecords(w http.ResponseWriter, r *http.Request, cache *dataset.Cache, reqLog *logrus.Entry) ([]types.SurveyRecord, bool) {
	base, f, ok := requestView(w, r, cache, reqLog)
	if !ok {
		return nil, false
	}
	return dataset.Apply(base, f), true
}

// parseFilter reads from/to (2006-01-02, inclusive) and cities (comma
// separated). Absent params mean no filtering.
func parseFilter(r *http.Request) (dataset.Filter, error) {
	var f dataset.Filter
	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return f, fmt.Errorf("invalid from date %q", from)
		}
		f.From = t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return f, fmt.Errorf("invalid to date %q", to)
		}
		f.To = t
	}
	if cities := r.URL.Query().Get("cities"); cities != "" {
		for _, c := range strings.Split(cities, ",") {
			if c = strings.TrimSpace(c); c != "" {
				f.Cities = append(f.Cities, c)
			}
		}
	}
	return f, nil
}

func writeJSON(w http.ResponseWriter, reqLog *logrus.Entry, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		reqLog.WithError(err).Error("failed to write response")
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
