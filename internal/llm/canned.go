package llm

import (
	"context"
	"strings"
)

// Canned is the offline chat fallback. It routes the user question through
// keyword groups and returns a fixed, topic-appropriate answer, so demo
// sessions stay conversational without any external service.
type Canned struct{}

var _ Provider = (*Canned)(nil)

func NewCanned() *Canned { return &Canned{} }

func (c *Canned) Generate(_ context.Context, req Request) (string, error) {
	return c.respond(req.Question, req.Context), nil
}

func (c *Canned) respond(question, context string) string {
	q := strings.ToLower(question)

	switch {
	case containsAny(q, "vacation", "pto", "time off", "leave"):
		return vacationAnswer
	case containsAny(q, "sales", "revenue", "q4", "quarter"):
		return salesAnswer
	case containsAny(q, "lease", "rent", "tenant", "landlord"):
		return leaseAnswer
	case containsAny(q, "risk", "obligation", "compliance", "legal"):
		return riskAnswer
	case containsAny(q, "employee", "staff", "hr", "handbook"):
		return employeeAnswer
	case len(context) >= 50:
		return genericAnswer
	default:
		return apologyAnswer
	}
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

const vacationAnswer = `Based on the employee handbook, the vacation policy includes:

1. **Paid Time Off (PTO)**: Employees accrue PTO based on tenure:
   - 0-2 years: 10 days per year
   - 3-5 years: 15 days per year
   - 6+ years: 20 days per year

2. **Rollover**: Up to 5 unused PTO days can roll over to the next year

3. **Approval Process**: Vacation requests must be submitted at least 2 weeks in advance and approved by the direct manager

4. **Holidays**: In addition to PTO, employees receive 10 paid holidays per year

The policy aims to promote work-life balance while ensuring adequate staffing coverage.`

const salesAnswer = `Based on the Q4 sales data, here are the key highlights:

1. **Total Revenue**: $2.4M for Q4, representing a 15% increase over Q3

2. **Top Performing Regions**:
   - North America: $1.2M (50% of total)
   - Europe: $750K (31%)
   - Asia-Pacific: $450K (19%)

3. **Product Performance**:
   - Premium tier products showed strongest growth at 25% QoQ
   - Standard tier maintained steady performance

4. **Growth Drivers**:
   - New customer acquisitions up 20%
   - Existing customer expansion contributed 40% of revenue growth
   - Successful launch of two new product features

Q4 exceeded targets by 8%, positioning us well for year-end goals.`

const leaseAnswer = `Based on the lease agreement, key terms include:

1. **Lease Duration**: 12-month term with option to renew for an additional 12 months

2. **Monthly Rent**: $2,500 due on the 1st of each month

3. **Security Deposit**: $5,000 (equivalent to 2 months rent)

4. **Maintenance Responsibilities**:
   - Landlord: Major repairs, structural issues, HVAC maintenance
   - Tenant: Minor repairs, routine maintenance, utilities

5. **Termination**: 60-day notice required for non-renewal

6. **Restrictions**: No subletting without written consent, no pets over 25 lbs

The agreement follows standard commercial lease practices and includes standard liability and insurance clauses.`

const riskAnswer = `Based on the uploaded documents, key risks and obligations include:

**Legal & Compliance Risks:**
- Lease agreement requires maintaining proper insurance coverage
- Non-compliance with notice periods could result in penalties
- Property damage beyond normal wear-and-tear is tenant's responsibility

**HR & Employment Obligations:**
- Must maintain accurate PTO tracking and payroll records
- Equal opportunity employment policies must be followed
- Regular policy reviews and employee acknowledgments required

**Financial Obligations:**
- Timely rent payments to avoid default
- Security deposit subject to deductions for damages
- Sales revenue targets tied to performance bonuses

**Mitigation Strategies:**
- Maintain comprehensive insurance policies
- Regular policy training for managers
- Document all transactions and approvals
- Schedule regular property inspections

These obligations should be reviewed quarterly to ensure ongoing compliance.`

const employeeAnswer = `Based on the employee handbook, important information includes:

**Employment Policies:**
- At-will employment with equal opportunity provisions
- Standard work hours: 9 AM - 5 PM, Monday-Friday
- Remote work available with manager approval

**Benefits:**
- Health insurance (medical, dental, vision)
- 401(k) with 4% company match
- Life insurance and disability coverage
- Professional development budget: $1,500/year

**Code of Conduct:**
- Professional behavior and dress code expected
- Confidentiality and data security protocols
- Anti-harassment and discrimination policies

**Leave Policies:**
- PTO as described in vacation policy
- Sick leave: 5 days per year
- Parental leave: 12 weeks paid
- Bereavement leave: 3-5 days depending on relation

All policies are subject to annual review and updates.`

const genericAnswer = `Based on the available documents, here's what I found:

The uploaded documents contain information about company policies, sales performance, and contractual obligations. The content includes:

- **HR Policies**: Employee benefits, time-off policies, code of conduct
- **Financial Data**: Quarterly sales figures, revenue breakdowns by region
- **Legal Agreements**: Lease terms, responsibilities, and obligations

For more specific information, please ask about:
- Vacation and PTO policies
- Sales performance and metrics
- Lease terms and conditions
- Employee benefits and policies

I'm here to help you find specific information from these documents.`

const apologyAnswer = `I apologize, but I don't have enough relevant information in the uploaded documents to provide a comprehensive answer to your question.

The documents currently indexed include:
- Employee handbook (HR policies)
- Q4 sales data (revenue and performance metrics)
- Lease agreement (commercial property terms)

Please try rephrasing your question or asking about topics covered in these documents.`
