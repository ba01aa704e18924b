package http

import (
	"encoding/json"
	"net/http"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/process"
	qrcode "github.com/skip2/go-qrcode"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("response encode failed", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStats reports room/player counts plus a few process-level numbers
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := map[string]interface{}{
		"rooms":      s.registry.RoomCount(),
		"players":    s.registry.PlayerCount(),
		"goroutines": runtime.NumGoroutine(),
	}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if cpu, err := proc.CPUPercent(); err == nil {
			stats["cpuPercent"] = cpu
		}
		if mem, err := proc.MemoryInfo(); err == nil {
			stats["rssBytes"] = mem.RSS
		}
	}

	s.writeJSON(w, http.StatusOK, stats)
}

// handleRoomExists lets the join form probe a room id before connecting
func (s *Server) handleRoomExists(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("roomId")

	_, exists := s.registry.GetRoom(roomID)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"roomId": roomID,
		"exists": exists,
	})
}

// handleRoomQR serves a PNG QR code encoding the join URL for a room
func (s *Server) handleRoomQR(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("roomId")

	if _, exists := s.registry.GetRoom(roomID); !exists {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	joinURL := scheme + "://" + r.Host + "/room/" + roomID

	png, err := qrcode.Encode(joinURL, qrcode.Medium, s.config.QRSize)
	if err != nil {
		s.logger.Error("qr encode failed", "roomId", roomID, "error", err)
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
