package disbursement

type DisburseInput struct {
	ApplicationID string
	LenderID      string
}
