package upload

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/mpetrova/hirescout/internal/store/model"
	"github.com/mpetrova/hirescout/internal/store/ports"
)

// BuildLeads formats every company under maxEmployees into the website's
// lead shape: one Lead per active job, or one bare company Lead when it
// has a decision maker but no active jobs, matching the original
// formatter's per-job fan-out. Leads are sorted by MostRecentPostingDate
// descending, newest first.
func BuildLeads(ctx context.Context, store ports.Store, maxEmployees int) ([]Lead, error) {
	companies, err := store.CompaniesForUpload(ctx, maxEmployees)
	if err != nil {
		return nil, err
	}

	var leads []Lead
	for _, c := range companies {
		maker, err := store.GetDecisionMaker(ctx, c.ID)
		if err != nil {
			maker = nil
		}
		jobs, err := store.ActiveJobsForCompany(ctx, c.ID)
		if err != nil {
			continue
		}

		sort.Slice(jobs, func(i, k int) bool {
			return postingDateString(jobs[i]) > postingDateString(jobs[k])
		})

		mostRecent := ""
		for _, j := range jobs {
			if d := postingDateString(j); d > mostRecent {
				mostRecent = d
			}
		}

		isNewCompany := !c.FirstSeenDate.IsZero() && !c.LastCSVDate.IsZero() &&
			c.FirstSeenDate.Equal(c.LastCSVDate)

		base := leadBase(c, maker, mostRecent, isNewCompany)

		if len(jobs) == 0 {
			leads = append(leads, base)
			continue
		}
		for _, j := range jobs {
			lead := base
			lead.JobRole = j.Title
			lead.JobLink = j.JobURL
			lead.PostingDate = postingDateString(j)
			lead.VerificationStatus = string(j.VerificationStatus)
			if lead.VerificationStatus == "" || lead.VerificationStatus == string(model.VerificationUnknown) {
				lead.VerificationStatus = "unverified"
			}
			leads = append(leads, lead)
		}
	}

	sort.SliceStable(leads, func(i, k int) bool {
		return leads[i].MostRecentPostingDate > leads[k].MostRecentPostingDate
	})
	return leads, nil
}

func leadBase(c *model.Company, maker *model.DecisionMaker, mostRecent string, isNewCompany bool) Lead {
	firstName, lastName := "", ""
	title, email, linkedIn, sourceURL, confidence := "", "", "", "", ""
	if maker != nil {
		firstName, lastName = splitName(maker.PersonName)
		title = maker.Title
		if maker.Email != nil {
			email = *maker.Email
		}
		if maker.LinkedInURL != nil {
			linkedIn = *maker.LinkedInURL
		}
		sourceURL = maker.SourceURL
		confidence = string(maker.Confidence)
	}

	employeeCount := 0
	if c.EmployeeCount != nil {
		employeeCount = *c.EmployeeCount
	}
	industry := ""
	if c.Industry != nil {
		industry = *c.Industry
	}
	companySize := "Unknown"
	if employeeCount > 0 {
		companySize = itoaCompanySize(employeeCount)
	}

	firstSeenDate := ""
	if !c.FirstSeenDate.IsZero() {
		firstSeenDate = c.FirstSeenDate.Format("2006-01-02")
	}

	return Lead{
		FirstName:             firstName,
		LastName:              lastName,
		Title:                 title,
		CompanyName:           c.Name,
		Email:                 email,
		Website:               c.Website,
		CompanySize:           companySize,
		Category:              sizeCategory(employeeCount),
		Industry:              industry,
		EmployeeCount:         employeeCount,
		MostRecentPostingDate: mostRecent,
		LinkedInURL:           linkedIn,
		SourceURL:             sourceURL,
		Confidence:            confidence,
		IsNewCompany:          isNewCompany,
		FirstSeenDate:         firstSeenDate,
		VerificationStatus:    "unverified",
	}
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func postingDateString(j *model.Job) string {
	if j.PostingDate == nil {
		return ""
	}
	return j.PostingDate.Format("2006-01-02")
}

func itoaCompanySize(n int) string {
	return strconv.Itoa(n) + " employees"
}
