package ais

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"strconv"
	"time"

	"seawatch/internal/model"

	"github.com/gorilla/websocket"
)

// Subscription is the aisstream.io subscription envelope. Only
// PositionReport messages for the registered vessels are requested.
type Subscription struct {
	APIKey             string        `json:"APIKey"`
	BoundingBoxes      [][][]float64 `json:"BoundingBoxes"`
	FiltersShipMMSI    []string      `json:"FiltersShipMMSI"`
	FilterMessageTypes []string      `json:"FilterMessageTypes"`
}

// streamMessage mirrors the subset of the aisstream.io payload we read.
type streamMessage struct {
	MessageType string `json:"MessageType"`
	MetaData    struct {
		MMSI      int64   `json:"MMSI"`
		Latitude  float64 `json:"Latitude"`
		Longitude float64 `json:"Longitude"`
		TimeUTC   string  `json:"time_utc"`
	} `json:"MetaData"`
}

// Collector gathers position reports from the AIS stream in time-boxed
// windows.
type Collector struct {
	url    string
	apiKey string
}

// NewCollector creates a collector against the given stream endpoint.
func NewCollector(url, apiKey string) *Collector {
	return &Collector{url: url, apiKey: apiKey}
}

// maximum MMSI filters accepted by the stream per subscription
const maxMMSIFilter = 50

// Collect opens the stream, subscribes for the given MMSIs and reads
// position reports until the window closes or the context is cancelled.
// A connection cut mid-window is not an error: whatever was collected so
// far is returned as a partial batch.
func (c *Collector) Collect(ctx context.Context, mmsis []string, window time.Duration) ([]model.PositionReport, error) {
	if len(mmsis) == 0 {
		return nil, nil
	}
	if len(mmsis) > maxMMSIFilter {
		mmsis = mmsis[:maxMMSIFilter]
	}

	dialCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, c.url, nil)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	sub := Subscription{
		APIKey:             c.apiKey,
		BoundingBoxes:      [][][]float64{{{-90, -180}, {90, 180}}},
		FiltersShipMMSI:    mmsis,
		FilterMessageTypes: []string{"PositionReport"},
	}
	if err := conn.WriteJSON(sub); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(window)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	_ = conn.SetReadDeadline(deadline)

	var collected []model.PositionReport
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			// Window closed or stream cut: the partial batch is valid input
			if !isExpectedClose(err) {
				log.Printf("AIS stream closed early: %v (%d reports collected)", err, len(collected))
			}
			return collected, nil
		}

		var msg streamMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.MessageType != "PositionReport" || msg.MetaData.MMSI == 0 {
			continue
		}

		timestamp := time.Now().UnixMilli()
		if msg.MetaData.TimeUTC != "" {
			if t, err := parseStreamTime(msg.MetaData.TimeUTC); err == nil {
				timestamp = t.UnixMilli()
			}
		}

		collected = append(collected, model.PositionReport{
			MMSI:      formatMMSI(msg.MetaData.MMSI),
			Lat:       msg.MetaData.Latitude,
			Lon:       msg.MetaData.Longitude,
			Timestamp: timestamp,
		})
	}
}

func isExpectedClose(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}

// parseStreamTime handles the stream's "2006-01-02 15:04:05.999999999 -0700 MST"
// timestamps, falling back to RFC3339.
func parseStreamTime(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02 15:04:05.999999999 -0700 MST", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func formatMMSI(mmsi int64) string {
	// MMSIs are numeric on the wire but opaque vessel ids everywhere else
	return strconv.FormatInt(mmsi, 10)
}
