package main

import (
	"log"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"pharmanet/contract"
	"pharmanet/model"
)

func main() {
	cc, err := contractapi.NewChaincode(
		contract.NewRegistryContract(model.RoleManufacturer),
		contract.NewRegistryContract(model.RoleDistributor),
		contract.NewRegistryContract(model.RoleRetailer),
		contract.NewRegistryContract(model.RoleTransporter),
		contract.NewOrderContract(),
		contract.NewShippingContract(),
		contract.NewDrugContract(),
		contract.NewQueryContract(),
	)
	if err != nil {
		log.Panicf("Error creating pharmanet chaincode: %v", err)
	}
	if err := cc.Start(); err != nil {
		log.Panicf("Error starting pharmanet chaincode: %v", err)
	}
}
