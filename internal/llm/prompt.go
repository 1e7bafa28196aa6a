package llm

// PosterPrompt is the fixed instruction sent with every poster image. The
// field names, the closed jobType set, and the JSON-only rule are a contract
// shared with the sanitizers in internal/ingest; change them together.
const PosterPrompt = `Analyze this job poster image and extract the following information in valid JSON format. If any field is not found or unclear, use null for that field.

Required fields to extract:
{
  "title": "Job title/position",
  "company": "Company name",
  "location": "Job location (city, state, country)",
  "jobType": "One of: Full-time, Part-time, Internship, Remote, Hybrid, or Contract",
  "email": "Contact email address",
  "contactNumber": "Phone/contact number",
  "applyLink": "Application URL or company website",
  "description": "Brief job description if visible"
}

Important rules:
1. Return ONLY valid JSON, no additional text or markdown
2. Use null for any field that cannot be found
3. For jobType, choose the closest match from: Full-time, Part-time, Internship, Remote, Hybrid, Contract
4. Ensure email is in valid format
5. Ensure URLs start with http:// or https://
6. Keep description under 500 characters

Example response:
{
  "title": "Senior Software Engineer",
  "company": "Tech Corp",
  "location": "San Francisco, CA",
  "jobType": "Full-time",
  "email": "jobs@techcorp.com",
  "contactNumber": "+1-555-0123",
  "applyLink": "https://techcorp.com/careers",
  "description": "Looking for experienced developer..."
}`
