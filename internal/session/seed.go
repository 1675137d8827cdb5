package session

import "github.com/jonathan/resume-studio/internal/types"

// DefaultResume returns the demo resume every new session starts from, so the
// preview is never blank before the first structuring run.
func DefaultResume() *types.Resume {
	r := &types.Resume{
		Name:     "Amaan Khan",
		Location: "Islamabad, Pakistan",
		Email:    "amaan.dev@example.com",
		Phone:    "+92 300 1234567",
		GitHub:   "github.com/amaan-dev",
		LinkedIn: "linkedin.com/in/amaan-dev",
		Summary:  "Senior Full-Stack Engineer specialized in React and Node.js, focused on building efficient internal tools and financial tracking systems.",
		Skills: []types.SkillGroup{
			{Category: "Frontend", Skills: "React, Next.js, Tailwind CSS, Redux"},
			{Category: "Backend", Skills: "Node.js, Express, MongoDB, PostgreSQL"},
			{Category: "Tools", Skills: "Docker, AWS, Git, CI/CD"},
		},
		Experiences: []types.Experience{},
		Projects: []types.Project{
			{
				Title: "Expense Management System",
				Date:  "2023 - Present",
				Description: []string{
					"Designed and developed a full-stack expense management system for internal company use.",
					"Implemented financial tracking with monthly summaries and automatic balance calculations.",
					"Built complete CRUD functionality for vendors and office expenses using React and Node.js.",
				},
				Tech: "React, Node.js, Express, MongoDB",
			},
		},
		Education: types.Education{
			Degree:      "BS in Computer Science",
			Institution: "FAST NUCES",
			Date:        "2019 - 2023",
			Grade:       "3.7/4.0",
		},
	}
	return r.Normalize()
}
