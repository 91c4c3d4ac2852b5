package seeder

// Fixed ids so the demo data can be referenced from docs and manual tests.
const (
	DemoCompanyID  = "8f6d1a52-3c1e-4d7a-9a57-0c7b2f0e1a01"
	DemoEmployerID = "employer-demo"
	DemoJobID      = "8f6d1a52-3c1e-4d7a-9a57-0c7b2f0e1b01"
	DemoCandidate1 = "candidate-seo"
	DemoCandidate2 = "candidate-java"
)
