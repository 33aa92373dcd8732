package transport

import (
	"net/http"
)

// PurgeConversations handler
// @Summary Purge expired order conversations
// @Description Deletes messages and attachments for orders past the retention window
// @Tags Internal
// @Produce json
// @Success 200 {object} responseEnvelope
// @Router /internal/purge-conversations [post]
func (s *RestHandler) PurgeConversations(w http.ResponseWriter, r *http.Request) {
	purged, err := s.OrderApp.PurgeExpiredConversations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, map[string]int{"purged_orders": purged})
}
