// Package catalog holds the fixed vocabularies of the registration form.
package catalog

type Industry struct {
	Name        string
	Description string
}

type Stage struct {
	Name        string
	Focus       string
	Description string
}

// MaxIndustries is how many industry tags a team may pick.
const MaxIndustries = 3

var Industries = []Industry{
	{"Agentic AI", "Autonomous agents and multi-step AI orchestration systems."},
	{"GenAI & LLMs", "Creative tools, text generation, and model infrastructure."},
	{"SaaS (Enterprise)", "Cloud software and B2B digital transformation."},
	{"Cybersecurity", "Data privacy, threat detection, and zero-trust systems."},
	{"Deep Tech", "Quantum computing, advanced materials, and semiconductors."},
	{"Web3 & Blockchain", "DeFi, digital assets, and decentralized infra."},
	{"CloudTech & DevOps", "Server management, scaling tools, and developer platforms."},
	{"HealthTech", "Telemedicine, digital diagnostics, and patient management."},
	{"BioTech", "Drug discovery, genomics, and lab-grown alternatives."},
	{"MedTech", "Medical hardware, robotics for surgery, and wearable devices."},
	{"FemTech", "Women’s health, reproductive tech, and menopause support."},
	{"Longevity & Aging", "Tech for elder care and life-extension science."},
	{"Wellness & Mental Health", "Mindfulness apps and AI-assisted therapy."},
	{"ClimateTech", "Carbon capture, ESG reporting, and circular economy tools."},
	{"CleanTech", "Renewable energy (Solar, Wind, Fusion) and grid storage."},
	{"AgTech", "Precision farming, vertical agriculture, and soil health."},
	{"FoodTech", "Synthetic proteins, food waste reduction, and nutrition AI."},
	{"Mobility & EV", "Electric vehicles, charging networks, and battery tech."},
	{"Logistics & Supply Chain", "Autonomous shipping and last-mile delivery."},
	{"SpaceTech", "Orbital logistics, satellite data, and space exploration."},
	{"PropTech & Construction", "Smart buildings and digital real estate management."},
	{"FinTech", "Payments, neobanks, and automated wealth management."},
	{"InsurTech", "Digital underwriting and risk assessment platforms."},
	{"EdTech", "Gamified learning, AI tutoring, and LMS platforms."},
	{"GovTech", "Citizen services and public sector efficiency software."},
	{"DefenseTech", "National security tech, drones, and tactical software."},
	{"Retail & E-commerce", "D2C infrastructure and omnichannel retail."},
	{"Creator Economy", "Monetization tools and influencer marketing platforms."},
	{"Gaming & Metaverse", "VR/AR, eSports, and interactive entertainment."},
	{"AdTech & MarTech", "AI-driven marketing and customer acquisition."},
}

var Stages = []Stage{
	{
		Name:        "1. Concept & Ideation (Pre-Product)",
		Focus:       "Founder brilliance, market size, and the 'Why Now?' factor.",
		Description: "The team has identified a major problem and a theoretical solution. There is no working software or hardware yet. (Deliverable: Pitch deck and market research).",
	},
	{
		Name:        "2. Prototype / Alpha (Proof of Concept)",
		Focus:       "Technical feasibility and early design thinking.",
		Description: "A 'low-fidelity' version of the product exists. It proves the core technology or service is possible. (Deliverable: Demo or clickable wireframes).",
	},
	{
		Name:        "3. MVP & Pilot (Early Traction)",
		Focus:       "User engagement, retention, and initial feedback loops.",
		Description: "The Minimum Viable Product is live and in the hands of actual users. The team is currently testing for 'Product-Market Fit.' (Deliverable: Usage data or LOIs).",
	},
	{
		Name:        "4. Scaling & Revenue (Growth Stage)",
		Focus:       "Revenue growth, Customer Acquisition Cost (CAC), and Lifetime Value (LTV).",
		Description: "The product is being sold. The startup has a repeatable process for acquiring customers. (Deliverable: Financial statements and growth charts).",
	},
}

var (
	industriesByName = make(map[string]*Industry, len(Industries))
	stagesByName     = make(map[string]*Stage, len(Stages))
)

func init() {
	for i := range Industries {
		industriesByName[Industries[i].Name] = &Industries[i]
	}
	for i := range Stages {
		stagesByName[Stages[i].Name] = &Stages[i]
	}
}

func FindIndustry(name string) (*Industry, bool) {
	industry, found := industriesByName[name]
	return industry, found
}

func FindStage(name string) (*Stage, bool) {
	stage, found := stagesByName[name]
	return stage, found
}
