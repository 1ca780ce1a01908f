package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_uploads_total",
			Help: "Total log uploads by outcome",
		},
		[]string{"status"},
	)

	uploadEventsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "board_upload_events_total",
			Help: "Total new events committed from uploads",
		},
	)

	uploadPlayersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "board_upload_players_total",
			Help: "Total new players discovered from uploads",
		},
	)
)
