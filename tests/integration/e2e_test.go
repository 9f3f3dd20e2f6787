//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	grpcadapter "github.com/simaogato/propertyflow-backend/internal/adapter/grpc"
	"github.com/simaogato/propertyflow-backend/internal/domain"
)

var (
	grpcClient *grpcadapter.PortfolioServiceClient
	grpcConn   *grpc.ClientConn
)

// TestMain connects to a running server
func TestMain(m *testing.M) {
	grpcAddr := getGRPCAddress()
	var err error
	grpcConn, err = grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to gRPC server: %v", err))
	}

	grpcClient = grpcadapter.NewPortfolioServiceClient(grpcConn)

	code := m.Run()

	grpcConn.Close()
	os.Exit(code)
}

// getAuthContext returns a context with authorization metadata
func getAuthContext() context.Context {
	token := os.Getenv("API_TOKEN")
	if token == "" {
		token = "dev-token"
	}
	md := metadata.New(map[string]string{
		"authorization": token,
	})
	return metadata.NewOutgoingContext(context.Background(), md)
}

// getGRPCAddress returns the gRPC server address from environment or defaults
func getGRPCAddress() string {
	addr := os.Getenv("GRPC_ADDRESS")
	if addr == "" {
		addr = "localhost:8080"
	}
	return addr
}

func mustStruct(t *testing.T, fields map[string]interface{}) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

func tableRows(t *testing.T, resp *structpb.Struct) []*structpb.Value {
	t.Helper()
	list := resp.GetFields()["records"].GetListValue()
	require.NotNil(t, list, "response should carry a records list")
	return list.GetValues()
}

// TestEndToEndFlow tests the complete flow: Create -> Add -> Import -> Read -> End
func TestEndToEndFlow(t *testing.T) {
	ctx := getAuthContext()

	// 1. CreateSession with the sample portfolio
	created, err := grpcClient.CreateSession(ctx, mustStruct(t, map[string]interface{}{"seed_sample": true}))
	require.NoError(t, err, "CreateSession should succeed")
	sessionID := created.GetFields()["session_id"].GetStringValue()
	require.NotEmpty(t, sessionID)
	assert.Len(t, tableRows(t, created), 10, "sample portfolio should hold 10 properties")

	defer func() {
		_, _ = grpcClient.EndSession(ctx, mustStruct(t, map[string]interface{}{"session_id": sessionID}))
	}()

	// 2. AddProperty
	added, err := grpcClient.AddProperty(ctx, mustStruct(t, map[string]interface{}{
		"session_id": sessionID,
		"property": map[string]interface{}{
			domain.ColumnProperty:                  "E2E Property",
			domain.ColumnNetProfit:                 100000,
			domain.ColumnCostOfInvestment:          500000,
			domain.ColumnDiscountRate:              0.05,
			domain.ColumnInitialInvestment:         450000,
			domain.ColumnNetOperatingIncome:        80000,
			domain.ColumnMarketPricePerShare:       50,
			domain.ColumnDividendsOnPreferredStock: 5000,
			domain.ColumnAverageOutstandingShares:  20000,
			domain.ColumnCurrentMarketValue:        600000,
		},
	}))
	require.NoError(t, err, "AddProperty should succeed")
	rows := tableRows(t, added)
	require.Len(t, rows, 11)
	last := rows[10].GetStructValue().GetFields()
	assert.Equal(t, "E2E Property", last[domain.ColumnProperty].GetStringValue())
	assert.Equal(t, 20.0, last[domain.ColumnROI].GetNumberValue())
	assert.Equal(t, 110.25, last[domain.ColumnIRR].GetNumberValue())

	// 3. ImportTable
	content := "Property,Net Profit,Cost of Investment,Discount Rate,Initial Investment,Net Operating Income,Market Price per Share,Dividends on Preferred Stock,Average Outstanding Shares,Current Market Value\n" +
		"Imported A,80000,600000,0.06,500000,75000,60,6000,18000,550000\n" +
		"Imported B,120000,450000,0.04,400000,90000,45,4500,22000,620000\n"
	imported, err := grpcClient.ImportTable(ctx, mustStruct(t, map[string]interface{}{
		"session_id": sessionID,
		"content":    content,
	}))
	require.NoError(t, err, "ImportTable should succeed")
	assert.Len(t, tableRows(t, imported), 2)

	// 4. GetTable for each source
	active, err := grpcClient.GetTable(ctx, mustStruct(t, map[string]interface{}{"session_id": sessionID}))
	require.NoError(t, err)
	assert.Equal(t, "IMPORT", active.GetFields()["source"].GetStringValue())

	manual, err := grpcClient.GetTable(ctx, mustStruct(t, map[string]interface{}{
		"session_id": sessionID,
		"source":     "MANUAL",
	}))
	require.NoError(t, err)
	assert.Len(t, tableRows(t, manual), 11, "import should not touch the manual table")
}

// TestNegativeScenarios tests error code mapping against a live server
func TestNegativeScenarios(t *testing.T) {
	ctx := getAuthContext()

	// 1. Unauthenticated call
	t.Run("MissingToken", func(t *testing.T) {
		_, err := grpcClient.CreateSession(context.Background(), &structpb.Struct{})
		require.Error(t, err)
		assert.Equal(t, codes.Unauthenticated, status.Code(err), "Error code should be Unauthenticated")
	})

	// 2. Unknown session
	t.Run("UnknownSession", func(t *testing.T) {
		_, err := grpcClient.GetTable(ctx, mustStruct(t, map[string]interface{}{"session_id": uuid.New().String()}))
		require.Error(t, err)
		assert.Equal(t, codes.NotFound, status.Code(err), "Error code should be NotFound")
	})

	// 3. Malformed UUID
	t.Run("MalformedUUID", func(t *testing.T) {
		_, err := grpcClient.EndSession(ctx, mustStruct(t, map[string]interface{}{"session_id": "not-a-uuid"}))
		require.Error(t, err)
		assert.Equal(t, codes.InvalidArgument, status.Code(err), "Error code should be InvalidArgument")
	})

	// 4. Import with missing columns
	t.Run("MissingColumns", func(t *testing.T) {
		created, err := grpcClient.CreateSession(ctx, mustStruct(t, map[string]interface{}{"seed_sample": false}))
		require.NoError(t, err)
		sessionID := created.GetFields()["session_id"].GetStringValue()

		_, err = grpcClient.ImportTable(ctx, mustStruct(t, map[string]interface{}{
			"session_id": sessionID,
			"content":    "Property,Net Profit\nA,1\n",
		}))
		require.Error(t, err)
		assert.Equal(t, codes.InvalidArgument, status.Code(err), "Error code should be InvalidArgument")
		assert.Contains(t, status.Convert(err).Message(), domain.ColumnCostOfInvestment)
	})
}
