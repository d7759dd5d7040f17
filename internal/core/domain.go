package core

import "time"

const (
	ChannelFacebook = "Facebook"
	ChannelGoogle   = "Google"
)

// Section labels carried on channel records. A summary worksheet hosts up to
// three sections side by side in disjoint column bands.
const (
	SectionDailyROI = "daily_roi"
	SectionRollBack = "roll_back"
	SectionViolet   = "violet"
)

type (
	// ChannelRecord is one normalized daily row from a channel summary sheet
	// (FB Summary or Google Summary).
	ChannelRecord struct {
		Date            time.Time `json:"date"`
		Channel         string    `json:"channel"`
		Section         string    `json:"section"`
		Register        int       `json:"register"`
		FTD             int       `json:"ftd"`
		FTDRecharge     float64   `json:"ftd_recharge"`
		AvgRecharge     float64   `json:"avg_recharge"`
		ConversionRatio float64   `json:"conversion_ratio"`
		Cost            float64   `json:"cost"`
		CPR             float64   `json:"cpr"`
		CPFTD           float64   `json:"cpftd"`
		ROAS            float64   `json:"roas"`
		CPM             float64   `json:"cpm"`
		DepositAmount   float64   `json:"deposit_amount"`
	}

	// RunningAdsRecord is one dated row from the "WITH RUNNING ADS" band of an
	// agent performance sheet.
	RunningAdsRecord struct {
		Date           time.Time `json:"date"`
		Agent          string    `json:"agent_name"`
		AmountSpent    float64   `json:"amount_spent"`
		TotalAd        int       `json:"total_ad"`
		Campaign       string    `json:"campaign"`
		Impressions    int       `json:"impressions"`
		Clicks         int       `json:"clicks"`
		CTRPercent     float64   `json:"ctr_percent"`
		CPC            float64   `json:"cpc"`
		CPR            float64   `json:"cpr"`
		ConversionRate float64   `json:"conversion_rate"`
		RejectedCount  int       `json:"rejected_count"`
		DeletedCount   int       `json:"deleted_count"`
		ActiveCount    int       `json:"active_count"`
		Remarks        string    `json:"ad_remarks"`
	}

	// CreativeRecord is one content-bearing row from the creative band of an
	// agent performance sheet. Date, folder, type, and total inherit the last
	// seen value when the source cell is blank.
	CreativeRecord struct {
		Date    time.Time `json:"date"`
		Agent   string    `json:"agent_name"`
		Folder  string    `json:"creative_folder"`
		Type    string    `json:"creative_type"`
		Total   int       `json:"creative_total"`
		Content string    `json:"creative_content"`
		Caption string    `json:"caption"`
		Remarks string    `json:"creative_remarks"`
	}

	// SMSRecord is one row from the SMS band of an agent performance sheet.
	SMSRecord struct {
		Date    time.Time `json:"date"`
		Agent   string    `json:"agent_name"`
		Type    string    `json:"sms_type"`
		Total   int       `json:"sms_total"`
		Remarks string    `json:"sms_remarks"`
	}

	// ContentRecord is one copywriting entry from an agent content sheet or
	// the shared promotion sheet.
	ContentRecord struct {
		Date       time.Time `json:"date"`
		Agent      string    `json:"agent_name"`
		Type       string    `json:"content_type"`
		Primary    string    `json:"primary_content"`
		Condition  string    `json:"condition"`
		Status     string    `json:"status"`
		Adjustment string    `json:"primary_adjustment,omitempty"`
		Remarks    string    `json:"remarks,omitempty"`
		Source     string    `json:"source,omitempty"`
	}

	// KPIRecord is one per-agent daily row from the individual KPI sheet.
	// Ratio fields are derived at extraction time from the raw counters.
	KPIRecord struct {
		Date            time.Time `json:"date"`
		Agent           string    `json:"person_name"`
		Spend           float64   `json:"spend"`
		CostPHP         float64   `json:"cost_php"`
		FTD             int       `json:"result_ftd"`
		Register        int       `json:"register"`
		Reach           int       `json:"reach"`
		Impressions     int       `json:"impressions"`
		Clicks          int       `json:"clicks"`
		CTR             float64   `json:"ctr"`
		CPC             float64   `json:"cpc"`
		CPM             float64   `json:"cpm"`
		CostPerRegister float64   `json:"cost_per_register"`
		CostPerFTD      float64   `json:"cost_per_ftd"`
	}

	// CounterpartRecord is one row from the counterpart performance sheet.
	// Overall rows have a zero Date.
	CounterpartRecord struct {
		Date            time.Time `json:"date,omitempty"`
		Channel         string    `json:"channel"`
		ChannelSource   string    `json:"channel_source"`
		FirstRecharge   int       `json:"first_recharge"`
		TotalAmount     float64   `json:"total_amount"`
		ARPPU           float64   `json:"arppu"`
		Spending        float64   `json:"spending"`
		CostPerRecharge float64   `json:"cost_per_recharge"`
		ROAS            float64   `json:"roas"`
	}

	// TeamChannelRecord is one row from the team channel sheet. Overall rows
	// carry a team name and a zero Date.
	TeamChannelRecord struct {
		Date          time.Time `json:"date,omitempty"`
		TeamName      string    `json:"team_name,omitempty"`
		ChannelSource string    `json:"channel_source"`
		Cost          float64   `json:"cost"`
		Registrations int       `json:"registrations"`
		FirstRecharge int       `json:"first_recharge"`
		TotalAmount   float64   `json:"total_amount"`
		ARPPU         float64   `json:"arppu"`
	}
)
