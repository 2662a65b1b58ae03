package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"

	"github.com/nordbooks/leadtrack/metrics"
	"github.com/nordbooks/leadtrack/models"
	"github.com/nordbooks/leadtrack/store"
	"github.com/nordbooks/leadtrack/utils"
)

// CreateLead handles the public contact form. The route is wrapped by the
// per-IP rate limiter in the router, so by the time this runs the sender is
// under the submission limit.
func CreateLead(leadStore *store.Store, geoipDB *geoip2.Reader, mailer *utils.Mailer, m *metrics.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var receiver models.LeadReceiver
		if err := json.NewDecoder(r.Body).Decode(&receiver); err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		// Honeypot: bots fill the hidden website field. Answer success so
		// the sender can't tell they were caught, and store nothing.
		if receiver.Website != "" {
			logger.Info("honeypot tripped", zap.String("ip", utils.GetIPAddress(r)))
			if m != nil {
				m.HoneypotTrips.Inc()
			}
			utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
			return
		}

		if errs := utils.ValidateLeadSubmission(receiver); len(errs) > 0 {
			utils.WriteErrorResponse(w, http.StatusBadRequest, errors.New(strings.Join(errs, ", ")))
			return
		}

		ip := utils.GetIPAddress(r)

		// Geo enrichment is optional: no GeoIP database, no location fields.
		var location utils.Location
		if geoipDB != nil {
			if parsedIP := net.ParseIP(ip); parsedIP != nil {
				record, err := geoipDB.City(parsedIP)
				if err != nil {
					logger.Warn("geoip lookup failed", zap.String("ip", ip), zap.Error(err))
				} else {
					location = utils.GetLocationInfo(record)
				}
			}
		}

		lead := leadStore.AddLead(models.LeadInsert{
			Name:    receiver.Name,
			Email:   receiver.Email,
			Phone:   receiver.Phone,
			Company: receiver.Company,

			Urgency:   receiver.Urgency,
			Challenge: receiver.Service,
			Revenue:   receiver.Revenue,

			UTMSource:   receiver.UTMSource,
			UTMMedium:   receiver.UTMMedium,
			UTMCampaign: receiver.UTMCampaign,
			UTMTerm:     receiver.UTMTerm,
			UTMContent:  receiver.UTMContent,
			LandingPage: receiver.LandingPage,
			Referrer:    receiver.Referrer,

			SessionID:    receiver.SessionID,
			PageViews:    receiver.PageViews,
			TimeOnSite:   receiver.TimeOnSite,
			PagesVisited: receiver.PagesVisited,

			IP:        ip,
			UserAgent: r.UserAgent(),
			Country:   location.Country,
			Region:    location.Region,
			City:      location.City,
		})

		if m != nil {
			m.LeadsCreated.Inc()
		}

		// Best-effort notification; a mail outage must never fail the form.
		if mailer != nil {
			go func(lead models.Lead) {
				if err := mailer.NotifyNewLead(lead); err != nil {
					logger.Error("lead notification failed", zap.String("leadId", lead.ID), zap.Error(err))
				}
			}(lead)
		}

		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"id":      lead.ID,
		})
	}
}

// GetLeads lists leads in the trailing window, optionally filtered by
// status.
func GetLeads(leadStore *store.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := parseDays(r, 7)

		statusParam := r.URL.Query().Get("status")
		if statusParam != "" && !models.ValidLeadStatus(models.LeadStatus(statusParam)) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, errors.New("unknown status: "+statusParam))
			return
		}

		leads := leadStore.GetLeads(days)
		if statusParam != "" {
			filtered := leads[:0]
			for _, lead := range leads {
				if lead.Status == models.LeadStatus(statusParam) {
					filtered = append(filtered, lead)
				}
			}
			leads = filtered
		}

		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"leads": leads,
			"count": len(leads),
		})
	}
}

type leadStatusUpdate struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// UpdateLeadStatus moves a lead through the pipeline. Any known status is
// accepted, including backward moves; only the response timestamps are
// protected (first write wins, inside the store).
func UpdateLeadStatus(leadStore *store.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update leadStatusUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		if update.ID == "" {
			utils.WriteErrorResponse(w, http.StatusBadRequest, errors.New("id is required"))
			return
		}
		if !models.ValidLeadStatus(models.LeadStatus(update.Status)) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, errors.New("unknown status: "+update.Status))
			return
		}

		lead, err := leadStore.UpdateLeadStatus(update.ID, models.LeadStatus(update.Status))
		if err != nil {
			if errors.Is(err, store.ErrLeadNotFound) {
				utils.WriteErrorResponse(w, http.StatusNotFound, err)
				return
			}
			logger.Error("updating lead status failed", zap.String("leadId", update.ID), zap.Error(err))
			utils.WriteErrorResponse(w, http.StatusInternalServerError, errors.New("internal server error"))
			return
		}

		utils.WriteJSON(w, http.StatusOK, lead)
	}
}
