package service

import "iwacu/internal/models"

// replyTemplates is the fixed (intent × language) template table.
// Placeholders use {name} syntax and are substituted by the composer.
// The table is built once and never mutated.
var replyTemplates = map[string]map[string]string{
	models.IntentMenu: {
		models.LangFR: "🍽️ Voici notre sélection :\n{items}\n\nVenez découvrir notre carte complète !",
		models.LangEN: "🍽️ Here's our selection:\n{items}\n\nCome discover our full menu!",
	},
	models.IntentPromos: {
		models.LangFR: "🎉 Nos promotions actuelles :\n{promos}",
		models.LangEN: "🎉 Our current promotions:\n{promos}",
	},
	models.IntentHoraires: {
		models.LangFR: "🕐 Nous sommes {status} aujourd'hui.\n{hours}",
		models.LangEN: "🕐 We are {status} today.\n{hours}",
	},
	models.IntentBooking: {
		models.LangFR: "📅 Pour réserver :\n• Date (AAAA-MM-JJ)\n• Heure (HH:MM)\n• Nombre de personnes\n• Nom et téléphone",
		models.LangEN: "📅 To book:\n• Date (YYYY-MM-DD)\n• Time (HH:MM)\n• Number of people\n• Name and phone",
	},
	models.IntentFallback: {
		models.LangFR: "Je peux vous aider avec :\n🍽️ Le menu\n🕐 Les horaires\n🎉 Les promotions\n📅 Les réservations\n\nQue souhaitez-vous ?",
		models.LangEN: "I can help with:\n🍽️ Menu\n🕐 Hours\n🎉 Promotions\n📅 Reservations\n\nWhat do you need?",
	},
}

const (
	noActivePromosFR = "Aucune promo active"
	noActivePromosEN = "No active promotions"

	// Status wording is static: the horaires reply claims "open" even
	// when no hours entry exists for today. Kept as-is on purpose.
	statusOpenFR = "ouverts"
	statusOpenEN = "open"

	apologyReply = "Erreur technique, veuillez réessayer."
)
