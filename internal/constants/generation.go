package constants

const (
	// GenerationModel is the Gemini model used for all batch requests.
	GenerationModel = "gemini-2.5-flash-lite"

	// BatchSize is how many inspirations one provider call requests. The first
	// item is displayed immediately, the rest form the day's queue.
	BatchSize = 6

	// Temperature is deliberately high so the items within one batch differ
	// from each other.
	Temperature = 1.2
)

// Prompt asks for one full batch. The content locale is fixed to Slovak.
const Prompt = "Vygeneruj sadu 6 rôznych denných inšpirácií v slovenskom jazyku. Musia byť rôznorodé (stoicizmus, moderná psychológia, zen, produktivita)."

// SystemInstruction sets the persona for the generation request.
const SystemInstruction = "Si múdry, empatický a inšpiratívny životný kouč. Tvojím cieľom je poskytovať svieži, neklíšovitý a zmysluplný obsah."

// Schema field descriptions, fed to the structured-output schema so the model
// knows what belongs in each field.
const (
	MottoDescription      = "Krátke, úderné a zapamätateľné denné motto alebo mantra."
	ThoughtDescription    = "Hlbšia filozofická myšlienka alebo reflexia. 2-3 vety."
	MotivationDescription = "Konkrétna, realizovateľná rada alebo povzbudenie. Priama a akčná."
)
