package adsdomain

// CustomerClientRow é uma linha do recurso customer_client
type CustomerClientRow struct {
	CustomerClient CustomerClient `json:"customerClient"`
}

type CustomerClient struct {
	ResourceName    string `json:"resourceName"`
	ClientCustomer  string `json:"clientCustomer"`
	ID              Int64  `json:"id"`
	DescriptiveName string `json:"descriptiveName"`
	Level           Int64  `json:"level"`
	Manager         bool   `json:"manager"`
	TestAccount     bool   `json:"testAccount"`
	Status          Enum   `json:"status"`
}

// CustomerStatus ENABLED
const CustomerStatusEnabled = 2

// IsEnabledLeaf indica uma conta cliente ativa, que não é MCC nem conta de teste
func (c CustomerClient) IsEnabledLeaf() bool {
	enabled := c.Status.Code == CustomerStatusEnabled || c.Status.Label == "ENABLED"
	return enabled && !c.Manager && !c.TestAccount && c.Level.Value >= 1
}
