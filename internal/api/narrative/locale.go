package narrative

import "strings"

const DefaultLanguage = "nl"

// locale holds every language-dependent string the engine produces.
type locale struct {
	persona        string
	wordCap        int
	durationLabels map[string]string
	and            string
	ratingLabel    string
	eventLabel     string
	tipTitle       string
	noMoreTips     string
	noMoreTitle    string

	// itineraryPrompt takes the duration label, destination, the quoted item
	// names and the word cap.
	itineraryPrompt string
	// tipPrompt takes the name, destination, detail line and word cap.
	tipPrompt string

	itineraryFallback string // duration label, destination, names
	emptyItinerary    string // destination
	tipFallback       string // name, destination

	leadVerbs    []string
	prepositions []string
}

var locales = map[string]locale{
	"nl": {
		persona: "Je bent een enthousiaste lokale gids aan de Costa Blanca. Je schrijft warm, persoonlijk en bondig in het Nederlands. " +
			"Gebruik nooit markdown, opsommingstekens of koppen en verzin geen plaatsen die niet genoemd zijn.",
		wordCap: 60,
		durationLabels: map[string]string{
			"morning": "ochtend", "afternoon": "middag", "evening": "avond", "full-day": "dag",
		},
		and:               "en",
		ratingLabel:       "waardering",
		eventLabel:        "Evenement",
		tipTitle:          "Tip van de dag",
		noMoreTips:        "Je hebt vandaag alle tips al gezien. Kom morgen terug voor nieuwe inspiratie!",
		noMoreTitle:       "Geen tips meer vandaag",
		itineraryPrompt:   "Schrijf een korte, enthousiaste introductie voor een %s in %s met onder andere %s. Maximaal %d woorden, platte tekst zonder markdown.",
		tipPrompt:         "Schrijf een korte, enthousiaste tip over %s in %s. %s Maximaal %d woorden, platte tekst zonder markdown.",
		itineraryFallback: "Je %s in %s zit boordevol mooie momenten, met onder andere %s. Geniet ervan!",
		emptyItinerary:    "Er is vandaag niets passends gevonden in %s. Probeer andere interesses of een ander moment van de dag.",
		tipFallback:       "Onze tip van vandaag: %s in %s. Zeker de moeite waard!",
		leadVerbs:         []string{"Ontdek", "Bezoek", "Geniet", "Proef", "Wandel", "Begin", "Start", "Verken", "Bewonder", "Sluit"},
		prepositions:      []string{"naar", "bij", "met", "voor", "vanuit"},
	},
	"en": {
		persona: "You are an enthusiastic local guide on the Costa Blanca. You write warmly, personally and concisely in English. " +
			"Never use markdown, bullet points or headings and never invent places that were not mentioned.",
		wordCap: 60,
		durationLabels: map[string]string{
			"morning": "morning", "afternoon": "afternoon", "evening": "evening", "full-day": "day",
		},
		and:               "and",
		ratingLabel:       "rating",
		eventLabel:        "Event",
		tipTitle:          "Tip of the day",
		noMoreTips:        "You have seen all of today's tips. Come back tomorrow for fresh inspiration!",
		noMoreTitle:       "No more tips today",
		itineraryPrompt:   "Write a short, enthusiastic introduction for a %s in %s featuring %s. At most %d words, plain text without markdown.",
		tipPrompt:         "Write a short, enthusiastic tip about %s in %s. %s At most %d words, plain text without markdown.",
		itineraryFallback: "Your %s in %s is full of great moments, including %s. Enjoy!",
		emptyItinerary:    "Nothing suitable was found in %s today. Try other interests or another time of day.",
		tipFallback:       "Today's tip: %s in %s. Well worth a visit!",
		leadVerbs:         []string{"Discover", "Visit", "Enjoy", "Explore", "Taste", "Stroll", "Start", "Begin", "Admire"},
		prepositions:      []string{"with", "from", "towards", "around"},
	},
	"de": {
		persona: "Du bist ein begeisterter lokaler Reiseführer an der Costa Blanca. Du schreibst herzlich, persönlich und knapp auf Deutsch. " +
			"Verwende niemals Markdown, Aufzählungen oder Überschriften und erfinde keine Orte, die nicht genannt wurden.",
		wordCap: 55,
		durationLabels: map[string]string{
			"morning": "Vormittag", "afternoon": "Nachmittag", "evening": "Abend", "full-day": "Tag",
		},
		and:               "und",
		ratingLabel:       "Bewertung",
		eventLabel:        "Veranstaltung",
		tipTitle:          "Tipp des Tages",
		noMoreTips:        "Du hast heute schon alle Tipps gesehen. Schau morgen wieder vorbei!",
		noMoreTitle:       "Keine Tipps mehr für heute",
		itineraryPrompt:   "Schreibe eine kurze, begeisterte Einleitung für einen %s in %s mit %s. Höchstens %d Wörter, reiner Text ohne Markdown.",
		tipPrompt:         "Schreibe einen kurzen, begeisterten Tipp über %s in %s. %s Höchstens %d Wörter, reiner Text ohne Markdown.",
		itineraryFallback: "Dein %s in %s steckt voller schöner Momente, unter anderem %s. Viel Spaß!",
		emptyItinerary:    "Heute wurde in %s nichts Passendes gefunden. Versuche andere Interessen oder eine andere Tageszeit.",
		tipFallback:       "Unser Tipp für heute: %s in %s. Absolut einen Besuch wert!",
		leadVerbs:         []string{"Entdecke", "Besuche", "Genieße", "Erkunde", "Probiere", "Beginne", "Starte", "Bewundere", "Schlendere"},
		prepositions:      []string{"beim", "zum", "zur", "mit", "durch"},
	},
	"es": {
		persona: "Eres un guía local entusiasta de la Costa Blanca. Escribes de forma cálida, personal y concisa en español. " +
			"Nunca uses markdown, viñetas ni títulos y no inventes lugares que no se hayan mencionado.",
		wordCap: 60,
		durationLabels: map[string]string{
			"morning": "mañana", "afternoon": "tarde", "evening": "noche", "full-day": "día",
		},
		and:               "y",
		ratingLabel:       "valoración",
		eventLabel:        "Evento",
		tipTitle:          "Consejo del día",
		noMoreTips:        "Ya has visto todos los consejos de hoy. ¡Vuelve mañana para más inspiración!",
		noMoreTitle:       "No hay más consejos hoy",
		itineraryPrompt:   "Escribe una introducción breve y entusiasta para una %s en %s con %s. Como máximo %d palabras, texto plano sin markdown.",
		tipPrompt:         "Escribe un consejo breve y entusiasta sobre %s en %s. %s Como máximo %d palabras, texto plano sin markdown.",
		itineraryFallback: "Tu %s en %s está llena de buenos momentos, entre ellos %s. ¡Disfrútala!",
		emptyItinerary:    "Hoy no se ha encontrado nada adecuado en %s. Prueba otros intereses u otro momento del día.",
		tipFallback:       "Nuestro consejo de hoy: %s en %s. ¡Merece la pena!",
		leadVerbs:         []string{"Descubre", "Visita", "Disfruta", "Explora", "Prueba", "Pasea", "Empieza", "Comienza", "Admira"},
		prepositions:      []string{"hacia", "desde", "junto", "con", "por"},
	},
	"sv": {
		persona: "Du är en entusiastisk lokal guide på Costa Blanca. Du skriver varmt, personligt och kortfattat på svenska. " +
			"Använd aldrig markdown, punktlistor eller rubriker och hitta inte på platser som inte nämnts.",
		wordCap: 55,
		durationLabels: map[string]string{
			"morning": "förmiddag", "afternoon": "eftermiddag", "evening": "kväll", "full-day": "dag",
		},
		and:               "och",
		ratingLabel:       "betyg",
		eventLabel:        "Evenemang",
		tipTitle:          "Dagens tips",
		noMoreTips:        "Du har redan sett alla dagens tips. Kom tillbaka i morgon för ny inspiration!",
		noMoreTitle:       "Inga fler tips i dag",
		itineraryPrompt:   "Skriv en kort, entusiastisk introduktion till en %s i %s med %s. Högst %d ord, ren text utan markdown.",
		tipPrompt:         "Skriv ett kort, entusiastiskt tips om %s i %s. %s Högst %d ord, ren text utan markdown.",
		itineraryFallback: "Din %s i %s är full av fina stunder, bland annat %s. Njut!",
		emptyItinerary:    "Inget passande hittades i %s i dag. Prova andra intressen eller en annan tid på dagen.",
		tipFallback:       "Dagens tips: %s i %s. Väl värt ett besök!",
		leadVerbs:         []string{"Upptäck", "Besök", "Njut", "Utforska", "Smaka", "Promenera", "Börja", "Starta", "Beundra"},
		prepositions:      []string{"till", "med", "vid", "från", "mot"},
	},
	"pl": {
		persona: "Jesteś entuzjastycznym lokalnym przewodnikiem po Costa Blanca. Piszesz ciepło, osobiście i zwięźle po polsku. " +
			"Nigdy nie używaj markdownu, wypunktowań ani nagłówków i nie wymyślaj miejsc, które nie zostały wymienione.",
		wordCap: 55,
		durationLabels: map[string]string{
			"morning": "poranek", "afternoon": "popołudnie", "evening": "wieczór", "full-day": "dzień",
		},
		and:               "i",
		ratingLabel:       "ocena",
		eventLabel:        "Wydarzenie",
		tipTitle:          "Wskazówka dnia",
		noMoreTips:        "Widziałeś już wszystkie dzisiejsze wskazówki. Wróć jutro po nowe inspiracje!",
		noMoreTitle:       "Brak kolejnych wskazówek na dziś",
		itineraryPrompt:   "Napisz krótkie, entuzjastyczne wprowadzenie do planu na %s w %s, w tym %s. Maksymalnie %d słów, zwykły tekst bez markdownu.",
		tipPrompt:         "Napisz krótką, entuzjastyczną wskazówkę o %s w %s. %s Maksymalnie %d słów, zwykły tekst bez markdownu.",
		itineraryFallback: "Twój plan na %s w %s jest pełen wspaniałych chwil, w tym %s. Miłej zabawy!",
		emptyItinerary:    "Dziś nie znaleziono nic odpowiedniego w %s. Spróbuj innych zainteresowań lub innej pory dnia.",
		tipFallback:       "Dzisiejsza wskazówka: %s w %s. Naprawdę warto!",
		leadVerbs:         []string{"Odkryj", "Odwiedź", "Poznaj", "Spróbuj", "Spaceruj", "Zacznij", "Rozpocznij", "Podziwiaj"},
		prepositions:      []string{"przy", "obok", "oraz", "przez", "przed"},
	},
}

// NormalizeLanguage maps a request language to a supported code. Region
// suffixes are dropped and anything unsupported becomes DefaultLanguage.
func NormalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if _, ok := locales[lang]; ok {
		return lang
	}
	return DefaultLanguage
}

func localeFor(lang string) locale {
	return locales[NormalizeLanguage(lang)]
}

// WordCap is the narrative length limit for lang.
func WordCap(lang string) int {
	return localeFor(lang).wordCap
}

// NoMoreTips is the localized exhaustion message.
func NoMoreTips(lang string) string {
	return localeFor(lang).noMoreTips
}

// NoMoreTipsTitle is the localized exhaustion title.
func NoMoreTipsTitle(lang string) string {
	return localeFor(lang).noMoreTitle
}

// TipTitle is the localized heading of a tip.
func TipTitle(lang string) string {
	return localeFor(lang).tipTitle
}

// EventLabel names the event category in lang.
func EventLabel(lang string) string {
	return localeFor(lang).eventLabel
}

// DurationLabel is the localized noun for an itinerary duration.
func DurationLabel(lang, duration string) string {
	l := localeFor(lang)
	if label, ok := l.durationLabels[duration]; ok {
		return label
	}
	return l.durationLabels["full-day"]
}

// joinNames renders names as "a, b and c" in lang.
func joinNames(lang string, names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " " + localeFor(lang).and + " " + names[len(names)-1]
}
