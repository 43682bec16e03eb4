package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	campaigndomain "github.com/smallbiznis/givehope/internal/campaign/domain"
	"gorm.io/gorm"
)

// EnsureSampleCampaigns seeds the starter campaigns on an empty database so
// the app is browsable out of the box. A database that already holds
// campaigns is left untouched.
func EnsureSampleCampaigns(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.WithContext(ctx).Table("campaigns").Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		for _, campaign := range sampleCampaigns {
			campaign.ID = node.Generate()
			campaign.CreatedAt = now
			campaign.UpdatedAt = now
			if err := tx.WithContext(ctx).Table("campaigns").Create(&campaign).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

var sampleCampaigns = []campaigndomain.Campaign{
	{
		Title:       "Clean Water Initiative",
		Description: "Providing clean drinking water to rural communities facing severe drought and water contamination issues.",
		FullDescription: `<h4>The Challenge</h4>
<p>In many rural communities around the world, access to clean drinking water remains a critical challenge. Families must walk miles to collect water from contaminated sources, leading to waterborne diseases that affect health, education, and economic opportunities.</p>
<h4>Our Solution</h4>
<p>The Clean Water Initiative aims to install water purification systems in 15 villages, benefiting over 7,500 people. Each system can provide up to 500 liters of clean water per day, drastically reducing waterborne diseases and improving quality of life.</p>
<h4>How Your Donation Helps</h4>
<ul>
<li>$25 provides clean water to one person for a year</li>
<li>$100 funds water quality testing for an entire community</li>
<li>$500 contributes to a community water purification system</li>
<li>$1,000 sponsors a complete water access point for a village</li>
</ul>
<h4>Impact and Sustainability</h4>
<p>Beyond installation, we train local community members to maintain the systems, ensuring long-term sustainability. Our team conducts regular water quality testing and provides ongoing technical support.</p>`,
		Category:   "Environment",
		GoalAmount: 50000,
		DaysLeft:   20,
		ImageURL:   "https://images.unsplash.com/photo-1488521787991-ed7bbaae773c?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&h=300&q=80",
	},
	{
		Title:       "Education for All",
		Description: "Supporting underprivileged children with school supplies, scholarships, and improved learning facilities.",
		FullDescription: `<h4>The Challenge</h4>
<p>Education is a fundamental right, yet millions of children around the world lack access to quality education due to poverty, lack of resources, and inadequate facilities.</p>
<h4>Our Solution</h4>
<p>The Education for All campaign aims to support 500 underprivileged children by providing school supplies, scholarships, teacher training, and improved learning facilities. Our focus is on creating sustainable educational environments that foster growth and learning.</p>
<h4>How Your Donation Helps</h4>
<ul>
<li>$25 provides a school supply kit for one child</li>
<li>$100 funds training for a teacher</li>
<li>$500 contributes to classroom renovations</li>
<li>$1,000 provides a full year scholarship for a student</li>
</ul>
<h4>Impact and Sustainability</h4>
<p>We work closely with local schools and communities to ensure the sustainability of our initiatives. Regular progress reports and student performance tracking help measure the impact of your donations.</p>`,
		Category:   "Education",
		GoalAmount: 30000,
		DaysLeft:   15,
		ImageURL:   "https://images.unsplash.com/photo-1497375638960-ca368c7231e4?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&h=300&q=80",
	},
	{
		Title:       "Healthcare Access",
		Description: "Bringing essential medical services to underserved communities through mobile clinics and telehealth solutions.",
		FullDescription: `<h4>The Challenge</h4>
<p>Millions of people around the world lack access to essential healthcare services due to geographical, economic, and social barriers. This results in preventable diseases, untreated conditions, and a lower quality of life.</p>
<h4>Our Solution</h4>
<p>The Healthcare Access initiative aims to bridge the healthcare gap by establishing mobile clinics and telehealth services in underserved communities. These solutions bring qualified medical professionals, essential medications, and preventive care to those who need it most.</p>
<h4>How Your Donation Helps</h4>
<ul>
<li>$25 provides basic medications for a patient</li>
<li>$100 funds a medical check-up for five people</li>
<li>$500 contributes to medical equipment for mobile clinics</li>
<li>$1,000 sponsors a day of full medical services for a community</li>
</ul>
<h4>Impact and Sustainability</h4>
<p>Our healthcare initiatives prioritize not only immediate medical care but also community education and local healthcare capacity building to ensure long-term health improvements.</p>`,
		Category:   "Healthcare",
		GoalAmount: 45000,
		DaysLeft:   8,
		ImageURL:   "https://images.unsplash.com/photo-1561037404-61cd46aa615b?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&h=300&q=80",
	},
}
