package survey

import (
	"fmt"

	"github.com/danielhkuo/quickly-rate/models"
)

// Labels is the localized copy shown on the tablet.
type Labels struct {
	Prompt             string                   `json:"prompt"`
	ScaleLow           string                   `json:"scale_low"`
	ScaleHigh          string                   `json:"scale_high"`
	DetailHeading      string                   `json:"detail_heading"`
	Aspects            map[models.Aspect]string `json:"aspects"`
	CommentLabel       string                   `json:"comment_label"`
	CommentPlaceholder string                   `json:"comment_placeholder"`
	Submit             string                   `json:"submit"`
	Submitting         string                   `json:"submitting"`
	ThanksHeading      string                   `json:"thanks_heading"`
	ThanksBody         string                   `json:"thanks_body"`
	SubmitError        string                   `json:"submit_error"`
}

// LabelsFor returns the copy for locale ("es" or "en"), falling back to
// Spanish. The prompt names the kiosk location.
func LabelsFor(locale, locationID string) Labels {
	if locale == "en" {
		return Labels{
			Prompt:        fmt.Sprintf("How likely are you to recommend the %q area?", locationID),
			ScaleLow:      "Not at all likely",
			ScaleHigh:     "Extremely likely",
			DetailHeading: "Rate your experience in more detail:",
			Aspects: map[models.Aspect]string{
				models.AspectFacilities:       "Facilities",
				models.AspectCleanliness:      "Cleanliness",
				models.AspectServiceAttention: "Service received",
				models.AspectAmbiance:         "Ambiance and comfort",
				models.AspectValueForMoney:    "Value for money",
			},
			CommentLabel:       "Send us your comments:",
			CommentPlaceholder: "Your opinion matters a lot to us...",
			Submit:             "Finish survey",
			Submitting:         "Sending...",
			ThanksHeading:      "Thank you very much!",
			ThanksBody:         "Your feedback has been recorded.",
			SubmitError:        "There was an error sending your response.",
		}
	}

	return Labels{
		Prompt:        fmt.Sprintf("¿Qué tan probable es que recomiendes la zona de %q?", locationID),
		ScaleLow:      "Nada Probable",
		ScaleHigh:     "Muy Probable",
		DetailHeading: "Califica tu experiencia con más detalle:",
		Aspects: map[models.Aspect]string{
			models.AspectFacilities:       "Instalaciones",
			models.AspectCleanliness:      "Limpieza",
			models.AspectServiceAttention: "Atención Recibida",
			models.AspectAmbiance:         "Ambiente y Comodidad",
			models.AspectValueForMoney:    "Relación Calidad/Precio",
		},
		CommentLabel:       "Envíanos tus comentarios:",
		CommentPlaceholder: "Tu opinión es muy importante para nosotros...",
		Submit:             "Finalizar Encuesta",
		Submitting:         "Enviando...",
		ThanksHeading:      "¡Muchas gracias!",
		ThanksBody:         "Tu feedback ha sido registrado.",
		SubmitError:        "Hubo un error al enviar tu respuesta.",
	}
}
